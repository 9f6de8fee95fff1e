// Package permission describe qué acciones, campos y secciones puede usar un rol por módulo,
// y valida los permisos almacenados contra ese esquema y el perfil del tenant.
package permission

import (
	"slices"
	"sort"

	"github.com/jhoicas/Gestion-api/internal/domain/profile"
)

// Acciones comunes.
const (
	ActionView   = "view"
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionPrint  = "print"
	ActionExport = "export"
)

// ModuleSchema forma permitida de los permisos de un módulo.
type ModuleSchema struct {
	Actions  []string `json:"actions"`
	Fields   []string `json:"fields,omitempty"`
	Sections []string `json:"sections,omitempty"`
}

// AllowsAction informa si la acción pertenece al esquema.
func (m ModuleSchema) AllowsAction(a string) bool { return slices.Contains(m.Actions, a) }

// AllowsField informa si el campo pertenece al esquema.
func (m ModuleSchema) AllowsField(f string) bool { return slices.Contains(m.Fields, f) }

// AllowsSection informa si la sección pertenece al esquema.
func (m ModuleSchema) AllowsSection(s string) bool { return slices.Contains(m.Sections, s) }

// Schema esquema global de permisos, por módulo. Inmutable tras construirse.
type Schema struct {
	modules map[string]ModuleSchema
}

// NewSchema construye un esquema copiando las definiciones.
func NewSchema(modules map[string]ModuleSchema) *Schema {
	s := &Schema{modules: make(map[string]ModuleSchema, len(modules))}
	for k, m := range modules {
		s.modules[k] = ModuleSchema{
			Actions:  slices.Clone(m.Actions),
			Fields:   slices.Clone(m.Fields),
			Sections: slices.Clone(m.Sections),
		}
	}
	return s
}

// Module devuelve el esquema del módulo; ok=false si el módulo no tiene esquema.
func (s *Schema) Module(key string) (ModuleSchema, bool) {
	m, ok := s.modules[key]
	return m, ok
}

// Modules claves con esquema, ordenadas.
func (s *Schema) Modules() []string {
	keys := make([]string, 0, len(s.modules))
	for k := range s.modules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot copia del esquema completo (para exponerlo por HTTP).
func (s *Schema) Snapshot() map[string]ModuleSchema {
	return NewSchema(s.modules).modules
}

var crud = []string{ActionView, ActionAdd, ActionEdit, ActionDelete}

func withCrud(extra ...string) []string {
	return append(slices.Clone(crud), extra...)
}

// DefaultSchema esquema de todos los módulos del catálogo embebido.
func DefaultSchema() *Schema {
	return NewSchema(map[string]ModuleSchema{
		profile.ModuleDashboard: {
			Actions:  []string{ActionView},
			Sections: []string{"sales", "financial", "stock", "crm"},
		},
		profile.ModuleReports: {
			Actions:  []string{ActionView, ActionPrint, ActionExport},
			Sections: []string{"cashier", "stock", "financial", "serviceOrders", "crm"},
		},
		profile.ModuleInformations: {
			Actions: []string{ActionView, ActionEdit},
			Fields:  []string{"name", "document", "address", "contacts", "logo"},
		},
		profile.ModuleSettings: {
			Actions:  []string{ActionView, ActionEdit},
			Sections: []string{"general", "cashier", "stock", "fiscal", "users", "permissions"},
		},
		profile.ModuleCashier: {
			Actions:  []string{ActionView, ActionAdd, "cancel", "discount", "openCash", "closeCash", ActionPrint},
			Fields:   []string{"unitPrice", "discount", "costPrice", "paymentMethods"},
			Sections: []string{"sales", "cashFlow"},
		},
		profile.ModuleRequests: {
			Actions: withCrud("cancel", ActionPrint),
			Fields:  []string{"customer", "products", "unitPrice", "discount", "note"},
		},
		profile.ModuleServiceOrders: {
			Actions: withCrud("cancel", ActionPrint),
			Fields:  []string{"customer", "vehicle", "services", "products", "unitPrice", "discount", "note"},
		},
		profile.ModuleStock: {
			Actions:  withCrud(ActionPrint, ActionExport),
			Fields:   []string{"code", "name", "costPrice", "salePrice", "quantity", "category", "provider"},
			Sections: []string{"products", "purchases", "transfers"},
		},
		profile.ModuleFinancial: {
			Actions:  withCrud(ActionPrint),
			Fields:   []string{"amount", "dueDate", "category", "bankAccount", "note"},
			Sections: []string{"billsToPay", "billsToReceive", "bankAccounts", "bankTransactions"},
		},
		profile.ModuleRegisters: {
			Actions:  withCrud(ActionExport),
			Fields:   []string{"name", "document", "phone", "email", "address"},
			Sections: []string{"customers", "collaborators", "providers", "paymentMethods", "vehicles", "carriers", "students"},
		},
		profile.ModuleCRM: {
			Actions:  withCrud(),
			Fields:   []string{"name", "phone", "email", "stage", "owner"},
			Sections: []string{"leads", "activities", "campaigns"},
		},
		profile.ModuleFiscal: {
			Actions: []string{ActionView, "issue", "cancel", ActionPrint},
			Fields:  []string{"nf", "nfce", "nfse"},
		},
	})
}
