package groundzero

import "testing"

func TestProportionalDamage(t *testing.T) {
	cases := []struct {
		name       string
		maxHP      int
		percent    int
		multiplier float64
		want       int
	}{
		{"full return keeps everything", 100, 100, 1, 0},
		{"zero return destroys", 100, 0, 1, 100},
		{"half return", 200, 50, 1, 100},
		{"tree at half return", 100, 50, woodBreakEfficiency, 95},
		{"tree at full return", 200, 100, woodBreakEfficiency, 180},
		{"floors fractions", 7, 33, 1, 4},
		{"never negative", 100, 100, 2, 0},
		{"no hit points", 0, 0, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := proportionalDamage(tc.maxHP, tc.percent, tc.multiplier); got != tc.want {
				t.Fatalf("proportionalDamage(%d, %d, %v) = %d, want %d", tc.maxHP, tc.percent, tc.multiplier, got, tc.want)
			}
		})
	}
}

func TestFullReturnLeavesThingsUndamaged(t *testing.T) {
	f := newFixture(t)
	wall := f.place("wall", 4, 4)
	d := newDevastator(scenario(100), fixedRand{})

	if err := d.damageResourceHolder(f.m, wall, 1); err != nil {
		t.Fatalf("damage: %v", err)
	}
	if wall.HitPoints != wall.MaxHitPoints() {
		t.Fatalf("hp = %d, want %d", wall.HitPoints, wall.MaxHitPoints())
	}
}

func TestNewClampsResourceReturn(t *testing.T) {
	d := newDevastator(scenario(180), fixedRand{})
	if d.cfg.ResourceReturn != 100 {
		t.Fatalf("resource return = %d, want 100", d.cfg.ResourceReturn)
	}
}
