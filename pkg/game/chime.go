package game

import (
	"encoding/binary"
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// 奖励音效参数
const (
	ChimeDuration = 450 * time.Millisecond
	ChimeAttack   = 8 * time.Millisecond
	ChimeRelease  = 320 * time.Millisecond
	ChimeVolume   = 0.6
)

// 上行三音：C6 E6 G6
var chimeNotes = []struct {
	freq  float64
	delay time.Duration
	gain  float64
}{
	{1046.50, 0, 0.5},
	{1318.51, 70 * time.Millisecond, 0.4},
	{1567.98, 140 * time.Millisecond, 0.35},
}

// envelope 线性起音 + 线性释音
// effects 里只有固定增益（Volume、Gain），随时间变化的包络需要自己实现
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.position >= start && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// ChimeStreamer 合成奖励音效，长度固定为 ChimeDuration
// 采样率过低、无法表示某个音符时跳过该音符
func ChimeStreamer(rate beep.SampleRate) beep.Streamer {
	voices := make([]beep.Streamer, 0, len(chimeNotes))
	for _, note := range chimeNotes {
		tone, err := generators.SineTone(rate, note.freq)
		if err != nil {
			log.Printf("[Chime] Skip %.0fHz at %d Hz: %v", note.freq, rate, err)
			continue
		}
		length := ChimeDuration - note.delay
		shaped := newEnvelope(beep.Take(rate.N(length), tone), length, ChimeAttack, ChimeRelease, rate)
		voice := beep.Seq(beep.Silence(rate.N(note.delay)), shaped)
		voices = append(voices, gain(voice, note.gain))
	}
	return beep.Take(rate.N(ChimeDuration), gain(beep.Mix(voices...), ChimeVolume))
}

// RenderChime 把奖励音效渲染成 16 位小端立体声 PCM，
// 可直接交给 audio.Context.NewPlayerFromBytes
func RenderChime(sampleRate int) []byte {
	rate := beep.SampleRate(sampleRate)
	total := rate.N(ChimeDuration)
	stream := ChimeStreamer(rate)

	out := make([]byte, 0, total*4)
	buf := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(buf)
		for _, s := range buf[:n] {
			for _, ch := range s {
				v := int16(math.Max(-1, math.Min(1, ch)) * math.MaxInt16)
				out = binary.LittleEndian.AppendUint16(out, uint16(v))
			}
		}
		if !ok {
			break
		}
	}
	return out
}
