package normalize

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"organizer@crowd.example", "organizer@crowd.example"},
		{"ORGANIZER@CROWD.EXAMPLE", "organizer@crowd.example"},
		{"  Buyer@Tickets.Example  ", "buyer@tickets.example"},
		{"", ""},
		{"   ", ""},
		{"Box.Office@Venue.ORG", "box.office@venue.org"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Email(tt.input)
			if got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ava Nguyen", "Ava Nguyen"},
		{"  Ava Nguyen  ", "Ava Nguyen"},
		{"", ""},
		{"   ", ""},
		{"LAUNCH NIGHT CREW", "LAUNCH NIGHT CREW"}, // case is kept
		{"the warehouse collective", "the warehouse collective"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Name(tt.input)
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRole(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user", "user"},
		{"USER", "user"},
		{"  Organizer  ", "organizer"},
		{"ADMIN", "admin"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Role(tt.input)
			if got != tt.want {
				t.Errorf("Role(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"draft", "draft"},
		{"PUBLISHED", "published"},
		{"  Pending  ", "pending"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Status(tt.input)
			if got != tt.want {
				t.Errorf("Status(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlatform(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"instagram", "instagram"},
		{"Instagram", "instagram"},
		{"  FACEBOOK  ", "facebook"},
		{"TikTok", "tiktok"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Platform(tt.input)
			if got != tt.want {
				t.Errorf("Platform(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"USD", "USD"},
		{"usd", "USD"},
		{"  eur  ", "EUR"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Currency(tt.input)
			if got != tt.want {
				t.Errorf("Currency(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCountry(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"US", "US"},
		{"us", "US"},
		{"  gb  ", "GB"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Country(tt.input)
			if got != tt.want {
				t.Errorf("Country(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQueryParam(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"music festival", "music festival"},
		{"  berlin  ", "berlin"},
		{"", ""},
		{"   ", ""},
		{"VIP", "VIP"}, // case is kept; matching folds later
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := QueryParam(tt.input)
			if got != tt.want {
				t.Errorf("QueryParam(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
