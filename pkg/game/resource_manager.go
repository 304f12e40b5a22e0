package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/tapreward/pkg/embedded"
)

// ResourceManager 统一加载和缓存图片、音效、字体
//
// 资源通过 YAML 清单中的 ID 访问，文件从 embedded 包读取。
// 加载失败的资源只记录日志，渲染层会用占位形状代替缺失的图片。
//
// 非线程安全，只在主循环中使用。
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image    // path -> Image
	audioCache    map[string]*audio.Player    // path -> Player
	fontFaceCache map[string]*text.GoTextFace // path:size -> Face
	audioContext  *audio.Context

	config      *ResourceConfig
	resourceMap map[string]string // 资源 ID -> 文件路径
	fontSizes   map[string]float64
}

// NewResourceManager 创建资源管理器，audioContext 为 nil 时音效加载会失败
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		audioCache:    make(map[string]*audio.Player),
		fontFaceCache: make(map[string]*text.GoTextFace),
		audioContext:  audioContext,
		resourceMap:   make(map[string]string),
		fontSizes:     make(map[string]float64),
	}
}

// AudioContext 返回音频上下文
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}

// LoadImage 加载并缓存图片
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage 返回已缓存的图片，未加载时返回 nil
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadSoundEffect 加载单次播放的音效
// 支持 .mp3 / .ogg / .wav
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for sound %s", path)
	}

	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound effect file %s: %w", path, err)
	}

	stream, err := decodeAudio(path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

func decodeAudio(path string, reader io.ReadSeeker) (io.ReadSeeker, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound effect %s: %w", path, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound effect %s: %w", path, err)
		}
		return s, nil
	case ".wav":
		s, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sound effect %s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav)", ext)
	}
}

// GetAudioPlayer 返回已缓存的播放器
func (rm *ResourceManager) GetAudioPlayer(path string) *audio.Player {
	return rm.audioCache[path]
}

// LoadFont 加载字体并按字号缓存
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	fontData, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// LoadResourceConfig 读取并解析 YAML 资源清单
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := embedded.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}
	return rm.ParseResourceConfig(data)
}

// ParseResourceConfig 从内存中的 YAML 解析资源清单
func (rm *ResourceManager) ParseResourceConfig(data []byte) error {
	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config: %w", err)
	}
	for _, name := range config.Order {
		if _, ok := config.Groups[name]; !ok {
			return fmt.Errorf("resource config order references unknown group %q", name)
		}
	}

	rm.config = &config
	rm.buildResourceMap()
	log.Printf("[ResourceManager] Loaded resource config: %d groups, %d ids", len(config.Groups), len(rm.resourceMap))
	return nil
}

func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	rm.fontSizes = make(map[string]float64)

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(rm.config.BasePath, img.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".png"
			}
			rm.resourceMap[img.ID] = fullPath
		}

		for _, sound := range group.Sounds {
			fullPath := buildFullPath(rm.config.BasePath, sound.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".ogg"
			}
			rm.resourceMap[sound.ID] = fullPath
		}

		for _, font := range group.Fonts {
			rm.resourceMap[font.ID] = buildFullPath(rm.config.BasePath, font.Path)
			rm.fontSizes[font.ID] = font.Size
		}
	}
}

// ResolvePath 返回资源 ID 对应的文件路径
func (rm *ResourceManager) ResolvePath(resourceID string) (string, bool) {
	p, ok := rm.resourceMap[resourceID]
	return p, ok
}

// GroupNames 按加载顺序返回所有组名
func (rm *ResourceManager) GroupNames() []string {
	if rm.config == nil {
		return nil
	}
	names := append([]string(nil), rm.config.Order...)
	listed := make(map[string]bool, len(names))
	for _, n := range names {
		listed[n] = true
	}
	var rest []string
	for n := range rm.config.Groups {
		if !listed[n] {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// LoadImageByID 按资源 ID 加载图片
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil, fmt.Errorf("resource ID not found: %s", resourceID)
	}
	return rm.LoadImage(filePath)
}

// GetImageByID 按资源 ID 取已加载的图片，缺失时返回 nil
func (rm *ResourceManager) GetImageByID(resourceID string) *ebiten.Image {
	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil
	}
	return rm.GetImage(filePath)
}

// GetSoundByID 按资源 ID 加载音效
func (rm *ResourceManager) GetSoundByID(resourceID string) (*audio.Player, error) {
	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil, fmt.Errorf("sound resource ID not found: %s", resourceID)
	}
	return rm.LoadSoundEffect(filePath)
}

// GroupLoader 逐个加载一组资源，供加载场景每帧推进
type GroupLoader struct {
	rm     *ResourceManager
	name   string
	steps  []func() error
	next   int
	failed int
}

// NewGroupLoader 为指定组创建加载器
func (rm *ResourceManager) NewGroupLoader(groupName string) (*GroupLoader, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	group, exists := rm.config.Groups[groupName]
	if !exists {
		return nil, fmt.Errorf("resource group not found: %s", groupName)
	}

	gl := &GroupLoader{rm: rm, name: groupName}
	for _, img := range group.Images {
		id := img.ID
		gl.steps = append(gl.steps, func() error {
			_, err := rm.LoadImageByID(id)
			return err
		})
	}
	for _, sound := range group.Sounds {
		id := sound.ID
		gl.steps = append(gl.steps, func() error {
			_, err := rm.GetSoundByID(id)
			return err
		})
	}
	for _, font := range group.Fonts {
		id := font.ID
		gl.steps = append(gl.steps, func() error {
			size := rm.fontSizes[id]
			if size <= 0 {
				size = 16
			}
			_, err := rm.LoadFont(rm.resourceMap[id], size)
			return err
		})
	}
	return gl, nil
}

// Step 加载下一个资源，全部完成后返回 true
// 单个资源失败只记录日志，不中断加载
func (gl *GroupLoader) Step() bool {
	if gl.Done() {
		return true
	}
	if err := gl.steps[gl.next](); err != nil {
		gl.failed++
		log.Printf("[ResourceManager] Warning: group %s: %v", gl.name, err)
	}
	gl.next++
	return gl.Done()
}

// Done 是否已全部处理
func (gl *GroupLoader) Done() bool {
	return gl.next >= len(gl.steps)
}

// Progress 已处理数和总数
func (gl *GroupLoader) Progress() (loaded, total int) {
	return gl.next, len(gl.steps)
}

// Failed 加载失败的资源数
func (gl *GroupLoader) Failed() int {
	return gl.failed
}

// LoadResourceGroup 同步加载整组资源，onProgress 可为 nil
func (rm *ResourceManager) LoadResourceGroup(groupName string, onProgress func(loaded, total int)) error {
	gl, err := rm.NewGroupLoader(groupName)
	if err != nil {
		return err
	}
	for !gl.Done() {
		gl.Step()
		if onProgress != nil {
			onProgress(gl.Progress())
		}
	}
	if gl.failed > 0 {
		log.Printf("[ResourceManager] Group %s loaded with %d missing resources", groupName, gl.failed)
	}
	return nil
}
