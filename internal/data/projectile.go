package data

import (
	"fmt"
	"os"

	"github.com/l1jgo/survivors/internal/world"
	"gopkg.in/yaml.v3"
)

// ProjectileTemplate holds the stats a spawned projectile starts with.
type ProjectileTemplate struct {
	Name     string  `yaml:"name"`
	Speed    float64 `yaml:"speed"`
	Damage   float64 `yaml:"damage"`
	Duration float64 `yaml:"duration"` // seconds
	Radius   float64 `yaml:"radius"`
}

type projectileListFile struct {
	Projectiles []ProjectileTemplate `yaml:"projectiles"`
}

// ProjectileTable holds projectile templates indexed by name.
type ProjectileTable struct {
	templates map[string]*ProjectileTemplate
}

// LoadProjectileTable loads projectile templates from a YAML file.
func LoadProjectileTable(path string) (*ProjectileTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read projectiles: %w", err)
	}
	var f projectileListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse projectiles: %w", err)
	}
	t := &ProjectileTable{templates: make(map[string]*ProjectileTemplate, len(f.Projectiles))}
	for i := range f.Projectiles {
		p := &f.Projectiles[i]
		t.templates[p.Name] = p
	}
	return t, nil
}

// Get returns a projectile template by name, or nil if not found.
func (t *ProjectileTable) Get(name string) *ProjectileTemplate {
	return t.templates[name]
}

// Count returns the number of loaded templates.
func (t *ProjectileTable) Count() int {
	return len(t.templates)
}

// RegisterAll makes every template spawnable in ws.
func (t *ProjectileTable) RegisterAll(ws *world.State) {
	for name, p := range t.templates {
		ws.RegisterProjectile(name, world.ProjectileSpec{
			Speed:    p.Speed,
			Damage:   p.Damage,
			Duration: p.Duration,
			Radius:   p.Radius,
		})
	}
}
