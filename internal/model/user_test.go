package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"user", RoleUser, false},
		// Unknown roles fail-closed.
		{"manager", "", true},
		{"Admin", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRole(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNewSessionInvariant(t *testing.T) {
	user := &User{ID: 1, Username: "alice", Role: RoleUser}

	tests := []struct {
		name  string
		token string
		user  *User
		want  bool
	}{
		{"token and user", "T1", user, true},
		{"token only", "T1", nil, false},
		{"user only", "", user, false},
		{"neither", "", nil, false},
	}

	for _, tt := range tests {
		s := NewSession(tt.token, tt.user)
		if s.IsAuthenticated != tt.want {
			t.Errorf("%s: IsAuthenticated = %v, want %v", tt.name, s.IsAuthenticated, tt.want)
		}
	}
}

func TestSessionRole(t *testing.T) {
	if got := (Session{}).Role(); got != "" {
		t.Errorf("empty session role = %q, want empty", got)
	}
	s := NewSession("T", &User{ID: 2, Role: RoleAdmin})
	if got := s.Role(); got != RoleAdmin {
		t.Errorf("role = %q, want admin", got)
	}
}

func TestImageResolveURL(t *testing.T) {
	tests := []struct {
		url  string
		base string
		want string
	}{
		{"https://cdn.example.com/a.jpg", "http://127.0.0.1:10000", "https://cdn.example.com/a.jpg"},
		{"uploads/a.jpg", "http://127.0.0.1:10000", "http://127.0.0.1:10000/uploads/a.jpg"},
		{"/uploads/a.jpg", "http://127.0.0.1:10000/", "http://127.0.0.1:10000/uploads/a.jpg"},
		{"data:image/jpeg;base64,AAAA", "http://x", "data:image/jpeg;base64,AAAA"},
		{"uploads/a.jpg", "", "uploads/a.jpg"},
	}

	for _, tt := range tests {
		got := Image{ImageURL: tt.url}.ResolveURL(tt.base)
		if got != tt.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.url, tt.base, got, tt.want)
		}
	}
}

func TestTimestampFormats(t *testing.T) {
	inputs := []string{
		`"2024-03-01T10:20:30Z"`,
		`"Fri, 01 Mar 2024 10:20:30 GMT"`,
		`"2024-03-01 10:20:30"`,
	}
	want := time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)

	for _, in := range inputs {
		var ts Timestamp
		if err := json.Unmarshal([]byte(in), &ts); err != nil {
			t.Fatalf("Unmarshal(%s): %v", in, err)
		}
		if !ts.Equal(want) {
			t.Errorf("Unmarshal(%s) = %v, want %v", in, ts.Time, want)
		}
	}

	for _, in := range []string{`null`, `""`, `"yesterday"`, `1714521600`, `{"at":1}`} {
		ts := Timestamp{Time: want}
		if err := json.Unmarshal([]byte(in), &ts); err != nil || !ts.IsZero() {
			t.Errorf("Unmarshal(%s): err=%v zero=%v", in, err, ts.IsZero())
		}
	}
}

func TestTimestampOddValuesInList(t *testing.T) {
	body := `[
		{"id": 1, "name": "Umbrella", "reported_at": "2024-05-01"},
		{"id": 2, "name": "Wallet", "reported_at": 1714521600},
		{"id": 3, "name": "Keys", "reported_at": "last week"}
	]`

	var items []Item
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC); !items[0].ReportedAt.Equal(want) {
		t.Errorf("date-only reported_at = %v, want %v", items[0].ReportedAt.Time, want)
	}
	for _, it := range items[1:] {
		if !it.ReportedAt.IsZero() {
			t.Errorf("item %d reported_at = %v, want zero", it.ID, it.ReportedAt.Time)
		}
	}
}
