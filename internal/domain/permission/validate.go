package permission

import (
	"slices"
	"sort"

	"github.com/jhoicas/Gestion-api/internal/domain/profile"
)

// Grant permisos de un rol sobre un módulo.
type Grant struct {
	Actions  []string `json:"actions"`
	Fields   []string `json:"fields,omitempty"`
	Sections []string `json:"sections,omitempty"`
}

func (g Grant) clone() Grant {
	return Grant{
		Actions:  slices.Clone(g.Actions),
		Fields:   slices.Clone(g.Fields),
		Sections: slices.Clone(g.Sections),
	}
}

// RolePermissions permisos almacenados para un rol, por módulo.
type RolePermissions struct {
	Role    string           `json:"role"`
	Modules map[string]Grant `json:"modules"`
}

// ViolationKind tipo de incumplimiento del esquema.
type ViolationKind string

const (
	KindUnknownModule  ViolationKind = "unknown_module"
	KindUnknownAction  ViolationKind = "unknown_action"
	KindUnknownField   ViolationKind = "unknown_field"
	KindUnknownSection ViolationKind = "unknown_section"
)

// Violation incumplimiento puntual: no invalida el resto de módulos.
type Violation struct {
	Module string        `json:"module"`
	Kind   ViolationKind `json:"kind"`
	Value  string        `json:"value,omitempty"`
}

// Report resultado de Validate.
// Inert: módulos con permisos bien o mal formados pero sin efecto porque el perfil del
// tenant no los activa. No son errores.
type Report struct {
	Violations []Violation `json:"violations"`
	Inert      []string    `json:"inert"`
}

// Valid true si no hay violaciones (los módulos inertes no cuentan).
func (r Report) Valid() bool { return len(r.Violations) == 0 }

// Validate contrasta perms con el esquema, solo para los módulos activos en p.
func Validate(s *Schema, p profile.Profile, perms RolePermissions) Report {
	r := Report{Violations: []Violation{}, Inert: []string{}}
	for _, module := range sortedModules(perms) {
		if !profile.IsActive(p, module) {
			r.Inert = append(r.Inert, module)
			continue
		}
		ms, ok := s.Module(module)
		if !ok {
			r.Violations = append(r.Violations, Violation{Module: module, Kind: KindUnknownModule})
			continue
		}
		g := perms.Modules[module]
		r.Violations = appendUnknown(r.Violations, module, KindUnknownAction, g.Actions, ms.AllowsAction)
		r.Violations = appendUnknown(r.Violations, module, KindUnknownField, g.Fields, ms.AllowsField)
		r.Violations = appendUnknown(r.Violations, module, KindUnknownSection, g.Sections, ms.AllowsSection)
	}
	return r
}

func appendUnknown(out []Violation, module string, kind ViolationKind, values []string, allowed func(string) bool) []Violation {
	for _, v := range values {
		if !allowed(v) {
			out = append(out, Violation{Module: module, Kind: kind, Value: v})
		}
	}
	return out
}

// Sanitize devuelve una copia de perms sin las entradas fuera del esquema.
// Los módulos inertes para p se conservan tal cual para que vuelvan a tener efecto
// si el módulo se activa más adelante.
func Sanitize(s *Schema, p profile.Profile, perms RolePermissions) RolePermissions {
	out := RolePermissions{Role: perms.Role, Modules: make(map[string]Grant, len(perms.Modules))}
	for module, g := range perms.Modules {
		if !profile.IsActive(p, module) {
			out.Modules[module] = g.clone()
			continue
		}
		ms, ok := s.Module(module)
		if !ok {
			continue
		}
		out.Modules[module] = Grant{
			Actions:  keep(g.Actions, ms.AllowsAction),
			Fields:   keep(g.Fields, ms.AllowsField),
			Sections: keep(g.Sections, ms.AllowsSection),
		}
	}
	return out
}

func keep(values []string, allowed func(string) bool) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if allowed(v) && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// Allows decisión en dos etapas: el módulo debe estar activo para el tenant y
// el rol debe tener la acción concedida.
func Allows(p profile.Profile, perms RolePermissions, module, action string) bool {
	if !profile.IsActive(p, module) {
		return false
	}
	g, ok := perms.Modules[module]
	if !ok {
		return false
	}
	return slices.Contains(g.Actions, action)
}

// Effective permisos con efecto real: solo módulos activos en p.
func Effective(p profile.Profile, perms RolePermissions) RolePermissions {
	out := RolePermissions{Role: perms.Role, Modules: map[string]Grant{}}
	for module, g := range perms.Modules {
		if profile.IsActive(p, module) {
			out.Modules[module] = g.clone()
		}
	}
	return out
}

// Full concede todo lo que el esquema permite sobre los módulos activos en p.
func Full(s *Schema, p profile.Profile, role string) RolePermissions {
	out := RolePermissions{Role: role, Modules: map[string]Grant{}}
	for _, module := range s.Modules() {
		if !profile.IsActive(p, module) {
			continue
		}
		ms, _ := s.Module(module)
		out.Modules[module] = Grant{
			Actions:  slices.Clone(ms.Actions),
			Fields:   slices.Clone(ms.Fields),
			Sections: slices.Clone(ms.Sections),
		}
	}
	return out
}

func sortedModules(perms RolePermissions) []string {
	keys := make([]string, 0, len(perms.Modules))
	for k := range perms.Modules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
