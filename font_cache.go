package gridlegend

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// faceKey uniquely identifies a font face by name, pixel size, bold, and
// italic.
type faceKey struct {
	name   string
	sizePx float64
	bold   bool
	italic bool
}

// FontCache manages TrueType/OpenType font loading and face caching. It
// scans the OS font directories plus any user-specified directories for
// .ttf and .otf files, registering each font by filename and by its
// internal family name.
//
// Rendered faces (hinted) and measure faces (unhinted) are cached
// separately: layout measurement wants ideal glyph advances, drawing
// wants hinted rasterization.
type FontCache struct {
	mu           sync.RWMutex
	dirs         []string
	fonts        map[string]*opentype.Font // lowercase name -> parsed font
	faces        map[faceKey]font.Face     // HintingFull
	measureFaces map[faceKey]font.Face     // HintingNone
	scanned      bool
}

// maxFontScanDepth limits recursive directory traversal when scanning.
const maxFontScanDepth = 3

// maxFontFileSize limits the size of font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

// NewFontCache creates a FontCache that searches the given directories
// plus the OS default font directories.
func NewFontCache(extraDirs ...string) *FontCache {
	return &FontCache{
		dirs:         append(systemFontDirs(), extraDirs...),
		fonts:        make(map[string]*opentype.Font),
		faces:        make(map[faceKey]font.Face),
		measureFaces: make(map[faceKey]font.Face),
	}
}

// GetFace returns a hinted font.Face for drawing, or nil if no matching
// font file is found. sizePx is the face size in pixels.
func (fc *FontCache) GetFace(name string, sizePx float64, bold, italic bool) font.Face {
	return fc.face(name, sizePx, bold, italic, font.HintingFull, fc.faces)
}

// GetMeasureFace returns an unhinted font.Face for text measurement, so
// label extents do not depend on hinting round-off.
func (fc *FontCache) GetMeasureFace(name string, sizePx float64, bold, italic bool) font.Face {
	return fc.face(name, sizePx, bold, italic, font.HintingNone, fc.measureFaces)
}

func (fc *FontCache) face(name string, sizePx float64, bold, italic bool, hinting font.Hinting, cache map[faceKey]font.Face) font.Face {
	fc.ensureScanned()

	key := faceKey{name: strings.ToLower(name), sizePx: sizePx, bold: bold, italic: italic}
	fc.mu.RLock()
	if face, ok := cache[key]; ok {
		fc.mu.RUnlock()
		return face
	}
	fc.mu.RUnlock()

	f := fc.findFont(key.name, bold, italic)
	if f == nil {
		return nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72, // size already in pixels
		Hinting: hinting,
	})
	if err != nil {
		return nil
	}

	fc.mu.Lock()
	cache[key] = face
	fc.mu.Unlock()
	return face
}

// styleSuffixes lists the filename suffix conventions for style variants,
// e.g. "arialbd" or "DejaVuSans-Bold".
func styleSuffixes(bold, italic bool) []string {
	switch {
	case bold && italic:
		return []string{" bold italic", "-bolditalic", "bi", "z"}
	case bold:
		return []string{" bold", "-bold", "bd", "b"}
	case italic:
		return []string{" italic", "-italic", "i"}
	}
	return nil
}

// findFont looks up a parsed font by lowercase name, trying
// style-specific variants before the base name.
func (fc *FontCache) findFont(lower string, bold, italic bool) *opentype.Font {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	for _, suffix := range styleSuffixes(bold, italic) {
		if f, ok := fc.fonts[lower+suffix]; ok {
			return f
		}
	}
	return fc.fonts[lower]
}

// LoadFont loads a TrueType/OpenType font file and registers it under the
// given name.
func (fc *FontCache) LoadFont(name, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// LoadFontData registers a TrueType/OpenType font from raw bytes.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.fonts[strings.ToLower(name)] = f
	fc.registerByFamilyName(f)
	fc.mu.Unlock()
	return nil
}

func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true

	for _, dir := range fc.dirs {
		fc.scanDir(dir, 0)
	}
}

func (fc *FontCache) scanDir(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDir(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		lower := strings.ToLower(entry.Name())
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		fc.fonts[strings.TrimSuffix(lower, filepath.Ext(lower))] = f
		fc.registerByFamilyName(f)
	}
}

// registerByFamilyName also indexes a font by the family and full names
// from its name table, so "DejaVu Sans" finds DejaVuSans.ttf.
func (fc *FontCache) registerByFamilyName(f *opentype.Font) {
	if family, err := f.Name(nil, sfnt.NameIDFamily); err == nil && family != "" {
		fc.fonts[strings.ToLower(family)] = f
	}
	if full, err := f.Name(nil, sfnt.NameIDFull); err == nil && full != "" {
		fc.fonts[strings.ToLower(full)] = f
	}
}

// systemFontDirs returns OS-specific font directories.
func systemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs := []string{filepath.Join(windir, "Fonts")}
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			dirs = append(dirs, filepath.Join(localAppData, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		home, _ := os.UserHomeDir()
		dirs := []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default: // linux, freebsd, etc.
		home, _ := os.UserHomeDir()
		dirs := []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"))
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}
