package auth

import "testing"

func TestHasClaim(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
		want   bool
	}{
		{"nil claims", nil, false},
		{"absent", map[string]any{"other": true}, false},
		{"false", map[string]any{AdminClaim: false}, false},
		{"true", map[string]any{AdminClaim: true}, true},
		{"string true does not count", map[string]any{AdminClaim: "true"}, false},
		{"number does not count", map[string]any{AdminClaim: 1}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			id := &Identity{SubjectID: "u1", Claims: test.claims}
			if got := id.HasClaim(AdminClaim); got != test.want {
				t.Errorf("HasClaim(%q) = %v, want %v", AdminClaim, got, test.want)
			}
		})
	}
}
