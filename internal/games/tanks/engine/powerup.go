package engine

// PowerupKind is the effect granted by a pickup.
type PowerupKind uint8

const (
	PowerupNone PowerupKind = iota
	PowerupHealth
	PowerupExtraAmmo
	PowerupShield
	PowerupWin
)

// String returns the name of the powerup kind.
func (k PowerupKind) String() string {
	switch k {
	case PowerupNone:
		return "none"
	case PowerupHealth:
		return "health"
	case PowerupExtraAmmo:
		return "extra_ammo"
	case PowerupShield:
		return "shield"
	case PowerupWin:
		return "win"
	default:
		return "unknown"
	}
}

// Powerup is a pickup descriptor. The zero value is "no powerup".
type Powerup struct {
	Kind      PowerupKind
	Intensity int
}

// Present reports whether the slot holds a powerup.
func (p Powerup) Present() bool {
	return p.Kind != PowerupNone
}

// applyTo grants the powerup to a tank. Win has no per-tank effect;
// the simulation handles it.
func (p Powerup) applyTo(t *Tank) {
	switch p.Kind {
	case PowerupExtraAmmo:
		t.Ammo += p.Intensity
	case PowerupHealth:
		t.Health += p.Intensity
	case PowerupShield:
		t.Invulnerable += p.Intensity
	}
}

// ParsePowerupKind converts a config name back to a PowerupKind.
func ParsePowerupKind(s string) (PowerupKind, bool) {
	for _, k := range []PowerupKind{PowerupHealth, PowerupExtraAmmo, PowerupShield, PowerupWin} {
		if k.String() == s {
			return k, true
		}
	}
	return PowerupNone, false
}
