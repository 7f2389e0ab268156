package colour

import "testing"

func TestSimulateDeuteranopia(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want string
	}{
		{name: "black", hex: "#000000", want: "#000000"},
		{name: "white", hex: "#ffffff", want: "#ffffff"},
		// R' = 125 + 30 = 155, G' = 140 + 24 = 164, B' = 24 + 28 = 52.
		{name: "warm orange", hex: "#c85028", want: "#9ba434"},
		// R' = 6.25 + 75 = 81.25 -> 81, G' = 7 + 60 = 67, B' = 60 + 70 = 130.
		{name: "green", hex: "#0ac864", want: "#514382"},
		{name: "uppercase input", hex: "C85028", want: "#9ba434"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimulateDeuteranopia(tt.hex); got != tt.want {
				t.Errorf("SimulateDeuteranopia(%s) = %s, want %s", tt.hex, got, tt.want)
			}
		})
	}
}

func TestSimulateDeuteranopiaGreysUnchanged(t *testing.T) {
	// Every row of the matrix sums to 1, so greys map to themselves.
	for v := 0; v <= 255; v += 5 {
		hex := RGBToHex(v, v, v)
		if got := SimulateDeuteranopia(hex); got != hex {
			t.Errorf("SimulateDeuteranopia(%s) = %s", hex, got)
		}
	}
}
