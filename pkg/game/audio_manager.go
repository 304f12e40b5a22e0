package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSettings 音效开关和音量
type AudioSettings struct {
	SoundEnabled bool
	SoundVolume  float64 // 0.0 ~ 1.0
}

// DefaultAudioSettings 默认开启音效，音量 0.8
func DefaultAudioSettings() AudioSettings {
	return AudioSettings{SoundEnabled: true, SoundVolume: 0.8}
}

// AudioManager 音效播放
//
// 通过资源 ID 播放音效；清单中没有或加载失败的音效可以注册一段
// 合成的 PCM 作为替代（见 RenderChime）。
type AudioManager struct {
	resourceManager *ResourceManager
	audioContext    *audio.Context
	settings        AudioSettings

	soundPlayers map[string]*audio.Player // 资源ID -> 播放器
	fallbacks    map[string][]byte        // 资源ID -> 16 位立体声 PCM
	missing      map[string]bool
}

// NewAudioManager 创建音频管理器，rm 可为 nil（只使用替代音效）
func NewAudioManager(rm *ResourceManager, audioContext *audio.Context, settings AudioSettings) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		audioContext:    audioContext,
		settings:        settings,
		soundPlayers:    make(map[string]*audio.Player),
		fallbacks:       make(map[string][]byte),
		missing:         make(map[string]bool),
	}
}

// RegisterFallback 为 soundID 注册替代音效
func (am *AudioManager) RegisterFallback(soundID string, pcm []byte) {
	am.fallbacks[soundID] = pcm
}

// Resume 音频上下文是否可用
// 浏览器里要等到第一次用户手势之后上下文才就绪
func (am *AudioManager) Resume() bool {
	return am.audioContext != nil && am.audioContext.IsReady()
}

// PlaySound 播放音效，返回是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if !am.settings.SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.settings.SoundVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量
func (am *AudioManager) SetSoundVolume(volume float64) {
	am.settings.SoundVolume = min(max(volume, 0), 1)
	for _, player := range am.soundPlayers {
		player.SetVolume(am.settings.SoundVolume)
	}
}

// SetSoundEnabled 开关音效
func (am *AudioManager) SetSoundEnabled(enabled bool) {
	am.settings.SoundEnabled = enabled
}

// Settings 返回当前设置
func (am *AudioManager) Settings() AudioSettings {
	return am.settings
}

// getSoundPlayer 获取或加载音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}
	if am.missing[soundID] {
		return nil
	}

	if am.resourceManager != nil {
		player, err := am.resourceManager.GetSoundByID(soundID)
		if err == nil {
			am.soundPlayers[soundID] = player
			return player
		}
		log.Printf("[AudioManager] Warning: Failed to load sound %s: %v", soundID, err)
	}

	if pcm, ok := am.fallbacks[soundID]; ok && am.audioContext != nil {
		log.Printf("[AudioManager] Using synthesized fallback for %s", soundID)
		player := am.audioContext.NewPlayerFromBytes(pcm)
		am.soundPlayers[soundID] = player
		return player
	}

	am.missing[soundID] = true
	log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
	return nil
}

