package sim

import "testing"

func TestEscalationRule_DefaultKills(t *testing.T) {
	r, err := CompileEscalationRule("Kills > 0")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		env  EscalationEnv
		want bool
	}{
		{EscalationEnv{Kills: 0, Health: 10}, false},
		{EscalationEnv{Kills: 1, Health: 10}, true},
		{EscalationEnv{Kills: 7, Health: 1}, true},
	}
	for _, tt := range tests {
		got, err := r.Triggered(tt.env)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Fatalf("%+v: got %v want %v", tt.env, got, tt.want)
		}
	}
}

func TestEscalationRule_Compound(t *testing.T) {
	r, err := CompileEscalationRule("Kills >= 3 || (Health < 4 && Seconds > 30)")
	if err != nil {
		t.Fatal(err)
	}
	ok, _ := r.Triggered(EscalationEnv{Kills: 0, Health: 3, Seconds: 31})
	if !ok {
		t.Fatal("low health after 30s should trigger")
	}
	ok, _ = r.Triggered(EscalationEnv{Kills: 2, Health: 3, Seconds: 10})
	if ok {
		t.Fatal("should not trigger yet")
	}
	if r.String() == "" {
		t.Fatal("rule should keep its source")
	}
}

func TestEscalationRule_Invalid(t *testing.T) {
	for _, src := range []string{"Kills +", "Kills + 1", "Ammo > 0"} {
		if _, err := CompileEscalationRule(src); err == nil {
			t.Fatalf("%q should not compile", src)
		}
	}
}
