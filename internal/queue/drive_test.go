package queue

import (
	"strings"
	"testing"
)

func TestExtractDriveIDs(t *testing.T) {
	idA := strings.Repeat("A", 33)
	idB := strings.Repeat("B", 33)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "share link",
			text: "https://drive.google.com/file/d/" + idA + "/view?usp=sharing",
			want: []string{idA},
		},
		{
			name: "open link with id param",
			text: "https://drive.google.com/open?id=" + idB,
			want: []string{idB},
		},
		{
			name: "two links one per line",
			text: "https://drive.google.com/file/d/" + idA + "/view\nhttps://drive.google.com/open?id=" + idB,
			want: []string{idA, idB},
		},
		{
			name: "same id in both shapes collapses to one",
			text: "https://drive.google.com/file/d/" + idA + "/view id=" + idA,
			want: []string{idA},
		},
		{
			name: "order preserved",
			text: "id=" + idB + " /file/d/" + idA,
			want: []string{idB, idA},
		},
		{
			name: "id too short",
			text: "id=" + strings.Repeat("A", 32) + "!",
			want: nil,
		},
		{
			name: "no links at all",
			text: "hola, te paso el audio por correo",
			want: nil,
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDriveIDs(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d ids %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("id[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDriveDisplayName(t *testing.T) {
	if got := driveDisplayName(strings.Repeat("x", 27) + "ABCDEF"); got != "Drive-ABCDEF" {
		t.Errorf("driveDisplayName = %q", got)
	}
}
