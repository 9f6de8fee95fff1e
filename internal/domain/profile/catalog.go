package profile

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/Gestion-api/internal/domain"
)

// Derivation describe un perfil compuesto: Base + Overrides bajo la clave Key.
type Derivation struct {
	Key       BusinessType `yaml:"key"`
	Base      BusinessType `yaml:"base"`
	Overrides Profile      `yaml:"overrides"`
}

// Compose combina base y overrides con semántica superficial: cada clave de primer nivel
// presente en overrides reemplaza por completo la de base (los components no se mezclan).
// El resultado es una copia profunda y no comparte estado con sus entradas.
func Compose(base, overrides Profile) Profile {
	out := make(Profile, len(base)+len(overrides))
	for k, f := range base {
		out[k] = f
	}
	for k, f := range overrides {
		out[k] = f
	}
	return out.Clone()
}

// Catalog tabla inmutable BusinessType -> Profile. Segura para lectores concurrentes.
type Catalog struct {
	profiles map[BusinessType]Profile
}

// NewCatalog construye el catálogo a partir de los perfiles base y aplica las derivaciones
// en orden (una derivación puede partir de otra anterior). Falla si una base no existe,
// si una clave se repite o si algún perfil no ofrece los módulos obligatorios activos.
func NewCatalog(base map[BusinessType]Profile, derived ...Derivation) (*Catalog, error) {
	profiles := make(map[BusinessType]Profile, len(base)+len(derived))
	for k, p := range base {
		if k == "" {
			return nil, fmt.Errorf("%w: clave de perfil vacía", domain.ErrInvalidProfile)
		}
		profiles[k] = p.Clone()
	}
	for _, d := range derived {
		if d.Key == "" {
			return nil, fmt.Errorf("%w: derivación sin clave", domain.ErrInvalidProfile)
		}
		if _, dup := profiles[d.Key]; dup {
			return nil, fmt.Errorf("%w: clave duplicada %q", domain.ErrInvalidProfile, d.Key)
		}
		b, ok := profiles[d.Base]
		if !ok {
			return nil, fmt.Errorf("%w: base %q de %q", domain.ErrUnknownBusinessType, d.Base, d.Key)
		}
		profiles[d.Key] = Compose(b, d.Overrides)
	}
	for k, p := range profiles {
		if err := checkBaseline(p); err != nil {
			return nil, fmt.Errorf("perfil %q: %w", k, err)
		}
	}
	return &Catalog{profiles: profiles}, nil
}

func checkBaseline(p Profile) error {
	for _, m := range BaselineModules() {
		if !IsActive(p, m) {
			return fmt.Errorf("%w: módulo obligatorio %q ausente o inactivo", domain.ErrInvalidProfile, m)
		}
	}
	return nil
}

// Resolve devuelve una copia del perfil de key. Modificar el resultado no afecta llamadas
// posteriores. Claves desconocidas devuelven domain.ErrUnknownBusinessType (sin perfil por defecto).
func (c *Catalog) Resolve(key BusinessType) (Profile, error) {
	p, ok := c.profiles[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBusinessType, key)
	}
	return p.Clone(), nil
}

// Lookup como Resolve pero con bool en lugar de error.
func (c *Catalog) Lookup(key BusinessType) (Profile, bool) {
	p, ok := c.profiles[key]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Has informa si la clave está declarada.
func (c *Catalog) Has(key BusinessType) bool {
	_, ok := c.profiles[key]
	return ok
}

// Keys claves declaradas, ordenadas.
func (c *Catalog) Keys() []BusinessType {
	keys := make([]BusinessType, 0, len(c.profiles))
	for k := range c.profiles {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Extend devuelve un catálogo nuevo con derivaciones adicionales (ej. leídas de PROFILES_FILE).
// El catálogo receptor no se modifica.
func (c *Catalog) Extend(derived ...Derivation) (*Catalog, error) {
	return NewCatalog(c.profiles, derived...)
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := NewCatalog(baseProfiles(), fiscalDerivations()...)
	if err != nil {
		// La tabla embebida es estática: un error aquí es un bug de programación.
		panic(err)
	}
	return c
})

// Default catálogo embebido, construido una sola vez.
func Default() *Catalog {
	return defaultCatalog()
}
