package mesh

import "testing"

func TestPackExample(t *testing.T) {
	got := Pack(1, 2, 3, 4, FaceTop, 3, false)
	if got != 69255430 {
		t.Errorf("Pack(1,2,3,4,top,3,false) = %d, want 69255430", got)
	}
}

func TestPackRoundTrip(t *testing.T) {
	for x := 0; x <= 63; x++ {
		for y := 0; y <= 63; y += 3 {
			for z := 0; z <= 63; z += 7 {
				want := Vertex{
					X:     uint8(x),
					Y:     uint8(y),
					Z:     uint8(z),
					Voxel: uint8(x*5 + y*3 + z),
					Face:  Face((x + z) % 8),
					AO:    uint8(y % 4),
					Flip:  (x+y+z)%2 == 1,
				}
				got := Unpack(want.Pack())
				if got != want {
					t.Fatalf("Unpack(Pack(%+v)) = %+v", want, got)
				}
			}
		}
	}
}

func TestPackFieldBoundaries(t *testing.T) {
	tests := []struct {
		name string
		v    Vertex
		want uint32
	}{
		{"x max", Vertex{X: 63}, 63 << 26},
		{"y max", Vertex{Y: 63}, 63 << 20},
		{"z max", Vertex{Z: 63}, 63 << 14},
		{"voxel max", Vertex{Voxel: 255}, 255 << 6},
		{"face max", Vertex{Face: 7}, 7 << 3},
		{"ao max", Vertex{AO: 3}, 3 << 1},
		{"flip", Vertex{Flip: true}, 1},
	}

	for _, tt := range tests {
		if got := tt.v.Pack(); got != tt.want {
			t.Errorf("%s: Pack = %#x, want %#x", tt.name, got, tt.want)
		}
	}
}

func TestFaceString(t *testing.T) {
	if got := FaceBack.String(); got != "back" {
		t.Errorf("FaceBack.String() = %q, want %q", got, "back")
	}
	if got := Face(9).String(); got != "invalid" {
		t.Errorf("Face(9).String() = %q, want %q", got, "invalid")
	}
}
