package profile

// Tipos de negocio embebidos.
const (
	Commerce    BusinessType = "Commerce"
	Distributor BusinessType = "Distributor"
	Mechanics   BusinessType = "Mechanics"
	Restaurant  BusinessType = "Restaurant"
	School      BusinessType = "School"
	CRMOnly     BusinessType = "CRMOnly"
)

// Módulos de negocio (además de los obligatorios).
const (
	ModuleCashier       = "cashier"
	ModuleRequests      = "requests"
	ModuleServiceOrders = "serviceOrders"
	ModuleStock         = "stock"
	ModuleFinancial     = "financial"
	ModuleRegisters     = "registers"
	ModuleCRM           = "crm"
	ModuleFiscal        = "fiscal"
)

// FiscalSuffix sufijo de las claves derivadas con facturación fiscal.
const FiscalSuffix = "/Fiscal"

func on() ModuleFlag  { return ModuleFlag{Active: true} }
func off() ModuleFlag { return ModuleFlag{Active: false} }

func module(active bool, components map[string]bool) ModuleFlag {
	f := ModuleFlag{Active: active, Components: make(map[string]ModuleFlag, len(components))}
	for k, v := range components {
		f.Components[k] = ModuleFlag{Active: v}
	}
	return f
}

func baseline() Profile {
	return Profile{
		ModuleDashboard:    on(),
		ModuleReports:      on(),
		ModuleInformations: on(),
		ModuleSettings:     on(),
	}
}

func withBaseline(modules Profile) Profile {
	p := baseline()
	for k, f := range modules {
		p[k] = f
	}
	return p
}

func stock(active, transfers bool) ModuleFlag {
	return module(active, map[string]bool{
		"products":  true,
		"purchases": true,
		"transfers": transfers,
	})
}

func financial(active bool) ModuleFlag {
	return module(active, map[string]bool{
		"billsToPay":       true,
		"billsToReceive":   true,
		"bankAccounts":     true,
		"bankTransactions": true,
	})
}

func cashier(active bool) ModuleFlag {
	return module(active, map[string]bool{
		"sales":    true,
		"cashFlow": true,
	})
}

type registersOpts struct {
	vehicles bool
	carriers bool
	students bool
}

func registers(o registersOpts) ModuleFlag {
	return module(true, map[string]bool{
		"customers":      true,
		"collaborators":  true,
		"providers":      true,
		"paymentMethods": true,
		"vehicles":       o.vehicles,
		"carriers":       o.carriers,
		"students":       o.students,
	})
}

func crm(active bool) ModuleFlag {
	return module(active, map[string]bool{
		"leads":      true,
		"activities": true,
		"campaigns":  true,
	})
}

// baseProfiles tabla estática de perfiles base.
func baseProfiles() map[BusinessType]Profile {
	return map[BusinessType]Profile{
		Commerce: withBaseline(Profile{
			ModuleCashier:       cashier(true),
			ModuleRequests:      on(),
			ModuleServiceOrders: off(),
			ModuleStock:         stock(true, true),
			ModuleFinancial:     financial(true),
			ModuleRegisters:     registers(registersOpts{}),
			ModuleCRM:           crm(false),
			ModuleFiscal:        off(),
		}),
		Distributor: withBaseline(Profile{
			ModuleCashier:       cashier(true),
			ModuleRequests:      on(),
			ModuleServiceOrders: off(),
			ModuleStock:         stock(true, true),
			ModuleFinancial:     financial(true),
			ModuleRegisters:     registers(registersOpts{carriers: true}),
			ModuleCRM:           crm(true),
			ModuleFiscal:        off(),
		}),
		Mechanics: withBaseline(Profile{
			ModuleCashier:       cashier(true),
			ModuleRequests:      off(),
			ModuleServiceOrders: on(),
			ModuleStock:         stock(true, false),
			ModuleFinancial:     financial(true),
			ModuleRegisters:     registers(registersOpts{vehicles: true}),
			ModuleCRM:           crm(false),
			ModuleFiscal:        off(),
		}),
		Restaurant: withBaseline(Profile{
			ModuleCashier:       cashier(true),
			ModuleRequests:      on(),
			ModuleServiceOrders: off(),
			ModuleStock:         stock(true, false),
			ModuleFinancial:     financial(true),
			ModuleRegisters:     registers(registersOpts{}),
			ModuleCRM:           crm(false),
			ModuleFiscal:        off(),
		}),
		School: withBaseline(Profile{
			ModuleCashier:   cashier(true),
			ModuleRequests:  off(),
			ModuleStock:     stock(true, false),
			ModuleFinancial: financial(true),
			ModuleRegisters: registers(registersOpts{students: true}),
			ModuleCRM:       crm(false),
		}),
		CRMOnly: withBaseline(Profile{
			ModuleStock: stock(false, false),
			ModuleRegisters: module(true, map[string]bool{
				"customers":     true,
				"collaborators": true,
			}),
			ModuleCRM: crm(true),
		}),
	}
}

// fiscalDerivations claves "<base>/Fiscal": idénticas a la base salvo fiscal activo.
func fiscalDerivations() []Derivation {
	bases := []BusinessType{Commerce, Distributor, Mechanics, Restaurant}
	out := make([]Derivation, 0, len(bases))
	for _, b := range bases {
		out = append(out, Derivation{
			Key:       b + FiscalSuffix,
			Base:      b,
			Overrides: Profile{ModuleFiscal: on()},
		})
	}
	return out
}
