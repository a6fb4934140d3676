// Package ebitenhost runs a game in an Ebiten window.
package ebitenhost

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ErrMissingAsset is wrapped when a configured image or sound cannot be loaded.
var ErrMissingAsset = errors.New("missing asset")

const sampleRate = 44100

// ImageStore holds decoded sprite images by asset name.
type ImageStore struct {
	images map[string]*ebiten.Image
}

// LoadImages loads every name in required from dir using files. Any missing
// entry or unreadable file fails the whole load.
func LoadImages(dir string, files map[string]string, required []string) (*ImageStore, error) {
	store := &ImageStore{images: make(map[string]*ebiten.Image, len(required))}

	for _, name := range required {
		file, ok := files[name]
		if !ok {
			return nil, fmt.Errorf("%w: no image configured for %q", ErrMissingAsset, name)
		}

		path := filepath.Join(dir, file)
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: image %q from %s: %v", ErrMissingAsset, name, path, err)
		}
		store.images[name] = img
	}
	return store, nil
}

// Size implements game.ImageStore.
func (s *ImageStore) Size(asset string) (int, int) {
	img, ok := s.images[asset]
	if !ok {
		return 0, 0
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// Image returns the loaded image for asset, or nil.
func (s *ImageStore) Image(asset string) *ebiten.Image {
	return s.images[asset]
}

// SoundStore holds decoded PCM for each sound and plays them on one audio context.
type SoundStore struct {
	context *audio.Context
	sounds  map[string][]byte
}

// LoadSounds decodes every name in required from dir using files. WAV, Ogg
// Vorbis and MP3 files are accepted.
func LoadSounds(dir string, files map[string]string, required []string) (*SoundStore, error) {
	store := &SoundStore{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[string][]byte, len(required)),
	}

	for _, name := range required {
		file, ok := files[name]
		if !ok {
			return nil, fmt.Errorf("%w: no sound configured for %q", ErrMissingAsset, name)
		}

		path := filepath.Join(dir, file)
		data, err := decodeSound(path)
		if err != nil {
			return nil, fmt.Errorf("%w: sound %q from %s: %v", ErrMissingAsset, name, path, err)
		}
		store.sounds[name] = data
	}
	return store, nil
}

func decodeSound(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var stream io.Reader
	src := bytes.NewReader(raw)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, src)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, src)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, src)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return io.ReadAll(stream)
}

// Play implements game.AudioPlayer. Each call starts an independent player.
func (s *SoundStore) Play(name string) error {
	data, ok := s.sounds[name]
	if !ok {
		return fmt.Errorf("unknown sound %q", name)
	}
	player := s.context.NewPlayerFromBytes(data)
	player.Play()
	return nil
}
