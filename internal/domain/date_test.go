package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "valid date", input: `"1895-12-28"`, want: NewDate(1895, time.December, 28)},
		{name: "null", input: `null`, want: Date{}},
		{name: "empty string", input: `""`, want: Date{}},
		{name: "bad format", input: `"28.12.1895"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !d.Equal(tt.want.Time) {
				t.Errorf("Unmarshal() = %v, want %v", d, tt.want)
			}
		})
	}
}

func TestDateMarshalRoundTrip(t *testing.T) {
	film := Film{ID: 1, Name: "Брат", ReleaseDate: NewDate(1997, time.May, 17)}
	data, err := json.Marshal(film)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["releaseDate"] != "1997-05-17" {
		t.Errorf("releaseDate = %v, want 1997-05-17", decoded["releaseDate"])
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2001, time.March, 4, 15, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time) error = %v", err)
	}
	if d.String() != "2001-03-04" {
		t.Errorf("Scan(time) = %s, want 2001-03-04", d)
	}
	if err := d.Scan([]byte("2010-10-10")); err != nil {
		t.Fatalf("Scan(bytes) error = %v", err)
	}
	if d.String() != "2010-10-10" {
		t.Errorf("Scan(bytes) = %s, want 2010-10-10", d)
	}
	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Errorf("Scan(nil) = %v, %v; want zero date", d, err)
	}
	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) expected error")
	}
}

func TestUserApplyDefaultName(t *testing.T) {
	u := User{Login: "dolore", Name: "  "}
	u.ApplyDefaultName()
	if u.Name != "dolore" {
		t.Errorf("Name = %q, want login", u.Name)
	}
	u = User{Login: "dolore", Name: "Nick"}
	u.ApplyDefaultName()
	if u.Name != "Nick" {
		t.Errorf("Name = %q, want Nick", u.Name)
	}
}

func TestFilmCloneIsDeep(t *testing.T) {
	f := &Film{ID: 1, Mpa: &MpaRating{ID: 1}, Genres: []Genre{{ID: 1}}, Likes: []int64{7}}
	c := f.Clone()
	c.Mpa.ID = 5
	c.Genres[0].ID = 9
	c.Likes[0] = 8
	if f.Mpa.ID != 1 || f.Genres[0].ID != 1 || f.Likes[0] != 7 {
		t.Errorf("Clone() shares state with original: %+v", f)
	}
}
