package pipeline

import (
	"encoding/binary"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"blockseg/internal/classify"
	"blockseg/internal/config"
)

// writeTestInput creates a 12x12 PNG split into a red left half and a blue
// right half, plus a matching heatmap that is hot on the left.
func writeTestInput(t *testing.T, dir, name string) (imagePath, heatmapPath string) {
	t.Helper()

	const w, h = 12, 12
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	heat := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.Set(x, y, color.RGBA{R: 200, A: 255})
				heat[y*w+x] = 0.9
			} else {
				img.Set(x, y, color.RGBA{B: 200, A: 255})
				heat[y*w+x] = 0.2
			}
		}
	}

	imagePath = filepath.Join(dir, name+".png")
	f, err := os.Create(imagePath)
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode image: %v", err)
	}
	f.Close()

	heatmapPath = filepath.Join(dir, name+".hmp")
	hf, err := os.Create(heatmapPath)
	if err != nil {
		t.Fatalf("create heatmap: %v", err)
	}
	if err := binary.Write(hf, binary.LittleEndian, heat); err != nil {
		t.Fatalf("write heatmap: %v", err)
	}
	hf.Close()

	return imagePath, heatmapPath
}

func testRunner(policy classify.Policy) *Runner {
	cfg := &config.Config{
		K:                      10,
		MinComponentSize:       5,
		BuildingBlockThreshold: 0.5,
	}
	return New(cfg, policy, rand.New(rand.NewSource(42)), zerolog.Nop())
}

func TestProcessImageArtifacts(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	imagePath, heatmapPath := writeTestInput(t, inDir, "scan")

	r := testRunner(classify.PolicyAdaptive)
	if err := r.ProcessImage(imagePath, heatmapPath, outDir); err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}

	for _, name := range []string{"segmentation.jpg", "building_blocks.jpg", "components_info.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(outDir, "components_info.json"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var entries []struct {
		Component     int `json:"component"`
		TopLeftCorner struct {
			X int `json:"x"`
			Y int `json:"y"`
		} `json:"topLeftCorner"`
		Width                    int     `json:"width"`
		Height                   int     `json:"height"`
		BuildingBlockProbability float64 `json:"buildingBlockProbability"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("parse report: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d components, want 2", len(entries))
	}

	// Left region spans columns 0-6 (boundary column included), right 7-11.
	if entries[0].Width != 7 || entries[0].Height != 12 {
		t.Errorf("component 1 is %dx%d, want 7x12", entries[0].Width, entries[0].Height)
	}
	if entries[1].TopLeftCorner.X != 7 {
		t.Errorf("component 2 starts at x=%d, want 7", entries[1].TopLeftCorner.X)
	}
	if entries[0].BuildingBlockProbability <= entries[1].BuildingBlockProbability {
		t.Error("left region should carry higher probability than right")
	}

	// Adaptive thresholds with two components: left is the building block.
	if _, err := os.Stat(filepath.Join(outDir, "building_blocks", "component_00001.jpg")); err != nil {
		t.Errorf("component 1 mask not in building_blocks: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "non_building_blocks", "component_00002.jpg")); err != nil {
		t.Errorf("component 2 mask not in non_building_blocks: %v", err)
	}
}

func TestProcessImageMissingHeatmap(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	imagePath, _ := writeTestInput(t, inDir, "scan")

	r := testRunner(classify.PolicyAdaptive)
	err := r.ProcessImage(imagePath, filepath.Join(inDir, "absent.hmp"), outDir)
	if err == nil {
		t.Fatal("ProcessImage accepted a missing heatmap")
	}
}

func TestProcessImageStaticPolicy(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	imagePath, heatmapPath := writeTestInput(t, inDir, "scan")

	r := testRunner(classify.PolicyStatic)
	if err := r.ProcessImage(imagePath, heatmapPath, outDir); err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}

	// Static threshold 0.5: only the hot left region qualifies.
	if _, err := os.Stat(filepath.Join(outDir, "building_blocks", "component_00001.jpg")); err != nil {
		t.Errorf("component 1 mask not in building_blocks: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "non_building_blocks", "component_00002.jpg")); err != nil {
		t.Errorf("component 2 mask not in non_building_blocks: %v", err)
	}
}

func TestProcessDir(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeTestInput(t, inDir, "first")
	writeTestInput(t, inDir, "second")

	r := testRunner(classify.PolicyAdaptive)
	if err := r.ProcessDir(inDir, outDir); err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}

	// Heatmap files are skipped as inputs, so exactly two images are
	// numbered 001 and 002 in directory order.
	for _, name := range []string{
		"output_001.jpg", "building_blocks_001.jpg",
		"output_002.jpg", "building_blocks_002.jpg",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
	for _, num := range []string{"001", "002"} {
		if _, err := os.Stat(filepath.Join(outDir, num, "components_info.json")); err != nil {
			t.Errorf("missing report for image %s: %v", num, err)
		}
		if _, err := os.Stat(filepath.Join(outDir, num, "output.jpg")); err != nil {
			t.Errorf("missing folder overview for image %s: %v", num, err)
		}
	}
}

func TestProcessDirSkipsBadImage(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	// An unreadable first entry keeps its number; the good image that
	// follows is numbered after it.
	if err := os.WriteFile(filepath.Join(inDir, "aaa.png"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	writeTestInput(t, inDir, "zzz")

	r := testRunner(classify.PolicyAdaptive)
	if err := r.ProcessDir(inDir, outDir); err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "output_001.jpg")); err == nil {
		t.Error("broken image produced an overview artifact")
	}
	if _, err := os.Stat(filepath.Join(outDir, "output_002.jpg")); err != nil {
		t.Errorf("good image missing its artifact: %v", err)
	}
}
