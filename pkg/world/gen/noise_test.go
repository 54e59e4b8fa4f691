package gen

import "testing"

func TestNoise2DDeterministic(t *testing.T) {
	ng1 := NewNoiseGenerator(12345)
	ng2 := NewNoiseGenerator(12345)

	for i := 0; i < 100; i++ {
		x := float64(i) * 0.1
		y := float64(i) * 0.2
		if ng1.Noise2D(x, y) != ng2.Noise2D(x, y) {
			t.Fatalf("Noise2D not deterministic at (%f, %f)", x, y)
		}
	}
}

func TestNoise2DRange(t *testing.T) {
	ng := NewNoiseGenerator(42)

	for i := 0; i < 10000; i++ {
		x := float64(i)*0.37 - 500
		y := float64(i)*0.53 - 500
		v := ng.Noise2D(x, y)
		if v < -1.0 || v > 1.0 {
			t.Fatalf("Noise2D(%f, %f) = %f, out of [-1,1]", x, y, v)
		}
	}
}

func TestNoise3DDeterministic(t *testing.T) {
	ng1 := NewNoiseGenerator(99)
	ng2 := NewNoiseGenerator(99)

	for i := 0; i < 100; i++ {
		x := float64(i) * 0.15
		y := float64(i) * 0.25
		z := float64(i) * 0.35
		if ng1.Noise3D(x, y, z) != ng2.Noise3D(x, y, z) {
			t.Fatalf("Noise3D not deterministic at (%f, %f, %f)", x, y, z)
		}
	}
}

func TestNoise3DRange(t *testing.T) {
	ng := NewNoiseGenerator(42)

	for i := 0; i < 10000; i++ {
		x := float64(i)*0.37 - 500
		y := float64(i)*0.53 - 500
		z := float64(i)*0.71 - 500
		v := ng.Noise3D(x, y, z)
		if v < -1.0 || v > 1.0 {
			t.Fatalf("Noise3D(%f, %f, %f) = %f, out of [-1,1]", x, y, z, v)
		}
	}
}

func TestNoiseDifferentSeeds(t *testing.T) {
	ng1 := NewNoiseGenerator(1)
	ng2 := NewNoiseGenerator(2)

	same := 0
	for i := 0; i < 100; i++ {
		x := float64(i)*0.7 + 0.3
		y := float64(i)*1.1 + 0.6
		if ng1.Noise2D(x, y) == ng2.Noise2D(x, y) {
			same++
		}
	}
	if same > 50 {
		t.Errorf("%d of 100 samples equal across seeds, want mostly different", same)
	}
}

func TestOctaveNoise2DRange(t *testing.T) {
	ng := NewNoiseGenerator(7)

	for i := 0; i < 1000; i++ {
		x := float64(i) * 0.013
		y := float64(i) * 0.029
		v := ng.OctaveNoise2D(x, y, 4, 0.5)
		if v < -1.0 || v > 1.0 {
			t.Fatalf("OctaveNoise2D(%f, %f) = %f, out of [-1,1]", x, y, v)
		}
	}
}
