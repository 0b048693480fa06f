package validation

import "testing"

func TestIsValidSlug(t *testing.T) {
	t.Parallel()

	valid := []string{"gt3-brakes", "flat-6-teardown", "a", "2024-recap"}
	invalid := []string{"", "UPPER", "spaces here", "trailing-", "-leading", "dot.slug"}

	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

func TestIsValidUsername(t *testing.T) {
	t.Parallel()

	valid := []string{"pat", "road_tester", "v-8-fan", "abcdefghijklmnopqrstuvwxyz1234"}
	invalid := []string{"", "ab", "way-too-long-for-a-username-at-all", "sp ace"}

	for _, s := range valid {
		if !IsValidUsername(s) {
			t.Errorf("IsValidUsername(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidUsername(s) {
			t.Errorf("IsValidUsername(%q) = true, want false", s)
		}
	}
}

func TestIsValidProvider(t *testing.T) {
	t.Parallel()

	valid := []string{"google", "discord", "github", "facebook"}
	invalid := []string{"", "G", "Google", "my provider", "1password"}

	for _, s := range valid {
		if !IsValidProvider(s) {
			t.Errorf("IsValidProvider(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidProvider(s) {
			t.Errorf("IsValidProvider(%q) = true, want false", s)
		}
	}
}
