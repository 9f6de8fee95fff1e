// Package profile modela el árbol de módulos/componentes que ofrece cada tipo de negocio
// (tenant) y la consulta de activación por ruta.
package profile

import (
	"sort"
	"strings"
)

// BusinessType clave que selecciona el perfil de un tenant (ej. "Commerce", "Commerce/Fiscal").
type BusinessType string

// Módulos base que todo perfil debe ofrecer activos.
const (
	ModuleDashboard    = "dashboard"
	ModuleReports      = "reports"
	ModuleInformations = "informations"
	ModuleSettings     = "settings"
)

// BaselineModules devuelve los módulos obligatorios de cualquier perfil.
func BaselineModules() []string {
	return []string{ModuleDashboard, ModuleReports, ModuleInformations, ModuleSettings}
}

// componentsSegment separa módulo y componente en una ruta: "stock.components.products".
const componentsSegment = "components"

// ModuleFlag estado de un módulo o componente. Components es opcional.
// Un componente solo tiene sentido si su módulo padre está activo.
type ModuleFlag struct {
	Active     bool                  `json:"active" yaml:"active"`
	Components map[string]ModuleFlag `json:"components,omitempty" yaml:"components,omitempty"`
}

// Clone copia en profundidad el flag y sus componentes.
func (f ModuleFlag) Clone() ModuleFlag {
	out := ModuleFlag{Active: f.Active}
	if f.Components != nil {
		out.Components = make(map[string]ModuleFlag, len(f.Components))
		for k, c := range f.Components {
			out.Components[k] = c.Clone()
		}
	}
	return out
}

// Profile módulos ofrecidos a un tipo de negocio.
// Ausencia de clave = módulo no ofrecido; Active=false = ofrecido pero deshabilitado.
type Profile map[string]ModuleFlag

// Clone copia en profundidad el perfil. Un perfil nil produce nil.
func (p Profile) Clone() Profile {
	if p == nil {
		return nil
	}
	out := make(Profile, len(p))
	for k, f := range p {
		out[k] = f.Clone()
	}
	return out
}

// Path construye la ruta de un componente: Path("stock", "products") = "stock.components.products".
func Path(module string, components ...string) string {
	var b strings.Builder
	b.WriteString(module)
	for _, c := range components {
		b.WriteString("." + componentsSegment + "." + c)
	}
	return b.String()
}

// IsActive informa si la capacidad indicada por path está habilitada.
// Devuelve true solo si todos los segmentos existen y están activos, incluida la hoja.
// Rutas mal formadas o claves inexistentes devuelven false, nunca error.
func IsActive(p Profile, path string) bool {
	keys, ok := splitPath(path)
	if !ok || p == nil {
		return false
	}
	flag, found := p[keys[0]]
	if !found || !flag.Active {
		return false
	}
	for _, k := range keys[1:] {
		flag, found = flag.Components[k]
		if !found || !flag.Active {
			return false
		}
	}
	return true
}

// IsActive atajo de IsActive(p, path).
func (p Profile) IsActive(path string) bool {
	return IsActive(p, path)
}

// ActivePaths lista ordenada de todas las rutas activas del perfil (para menús).
func (p Profile) ActivePaths() []string {
	var out []string
	for k, f := range p {
		collectActive(k, f, &out)
	}
	sort.Strings(out)
	return out
}

func collectActive(prefix string, f ModuleFlag, out *[]string) {
	if !f.Active {
		return
	}
	*out = append(*out, prefix)
	for k, c := range f.Components {
		collectActive(prefix+"."+componentsSegment+"."+k, c, out)
	}
}

// splitPath convierte "m.components.c" en ["m", "c"]. Los segmentos impares deben ser "components".
func splitPath(path string) ([]string, bool) {
	if path == "" {
		return nil, false
	}
	parts := strings.Split(path, ".")
	if len(parts)%2 == 0 {
		return nil, false
	}
	keys := make([]string, 0, len(parts)/2+1)
	for i, part := range parts {
		if i%2 == 1 {
			if part != componentsSegment {
				return nil, false
			}
			continue
		}
		if part == "" {
			return nil, false
		}
		keys = append(keys, part)
	}
	return keys, true
}
