package filters

import (
	"image"
	"image/png"
	"math/rand"
	"os"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/soypat/kirkkaus"
)

// GenerateRandomSquares creates an image with random colored squares on a black background.
func GenerateRandomSquares(rng *rand.Rand, width, height, numSquares, minSize, maxSize int) *kirkkaus.Buffer {
	pix := make([]byte, 3*width*height)
	for i := 0; i < numSquares; i++ {
		size := minSize + rng.Intn(maxSize-minSize+1)
		x := rng.Intn(width)
		y := rng.Intn(height)

		// Full range so that brightness saturates on some squares.
		r := uint8(rng.Intn(256))
		g := uint8(rng.Intn(256))
		b := uint8(rng.Intn(256))

		fillRect(pix, width, height, x, y, size, size, r, g, b)
	}
	return kirkkaus.NewBufferRaw(width, height, pix)
}

func fillRect(pix []byte, width, height, x, y, w, h int, r, g, b uint8) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			px, py := x+dx, y+dy
			if px < width && py < height {
				idx := 3 * (py*width + px)
				pix[idx], pix[idx+1], pix[idx+2] = r, g, b
			}
		}
	}
}

func savePNG(img image.Image, path string) error {
	if err := os.MkdirAll("testdata", 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// initGPU initializes WebGPU device and queue for testing.
func initGPU(t *testing.T) (*wgpu.Device, *wgpu.Queue, bool) {
	t.Helper()

	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		t.Skip("WebGPU not available")
		return nil, nil, false
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceLowPower,
	})
	if err != nil {
		t.Skipf("No GPU adapter: %v", err)
		return nil, nil, false
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		t.Skipf("No GPU device: %v", err)
		return nil, nil, false
	}

	queue := device.GetQueue()
	return device, queue, true
}

func TestBrightnessGPUMatchesCPU(t *testing.T) {
	device, queue, ok := initGPU(t)
	if !ok {
		return
	}

	rng := rand.New(rand.NewSource(42))
	const width, height = 256, 256
	src := GenerateRandomSquares(rng, width, height, 20, 10, 50)

	if err := savePNG(src, "testdata/brightness_gpu_input.png"); err != nil {
		t.Logf("failed to save input: %v", err)
	}

	filter, err := NewBrightnessGPU(device, queue, 0)
	if err != nil {
		t.Fatalf("NewBrightnessGPU: %v", err)
	}
	defer filter.Cleanup()

	for _, offset := range []int{-255, -100, -1, 1, 50, 200, 255} {
		got, err := filter.Adjust(src, offset)
		if err != nil {
			t.Fatalf("Adjust(%d): %v", offset, err)
		}
		want := AdjustBrightness(src, offset)
		if !got.Equal(want) {
			for i := 0; i < want.Len(); i++ {
				if got.Pixel(i) != want.Pixel(i) {
					t.Fatalf("offset %d pixel %d: got %v, want %v", offset, i, got.Pixel(i), want.Pixel(i))
				}
			}
		}
	}

	result, err := filter.Adjust(src, 80)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if err := savePNG(result, "testdata/brightness_gpu_output.png"); err != nil {
		t.Logf("failed to save output: %v", err)
	}
}

func TestBrightnessGPUControl(t *testing.T) {
	device, queue, ok := initGPU(t)
	if !ok {
		return
	}

	filter, err := NewBrightnessGPU(device, queue, 10)
	if err != nil {
		t.Fatalf("NewBrightnessGPU: %v", err)
	}
	defer filter.Cleanup()

	ctrls := filter.Controls()
	if len(ctrls) != 1 {
		t.Fatalf("want 1 control, got %d", len(ctrls))
	}
	if err := ctrls[0].ChangeValue(-30); err != nil {
		t.Fatal(err)
	}
	if filter.Offset() != -30 {
		t.Errorf("offset not updated by control: got %d", filter.Offset())
	}
	if err := ctrls[0].ChangeValue(300); err == nil {
		t.Error("expected out of range control value to fail")
	}
}
