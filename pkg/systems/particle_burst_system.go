package systems

import (
	"image/color"
	"log"
	"math/rand"

	"github.com/decker502/tapreward/internal/particle"
	"github.com/decker502/tapreward/pkg/components"
	"github.com/decker502/tapreward/pkg/ecs"
	"github.com/decker502/tapreward/pkg/render"
)

const (
	// 爆发粒子数量范围
	BurstMinCount = 15
	BurstMaxCount = 20

	// 物理参数（像素/秒）
	ParticleGravity      = 900.0
	ParticleMinVX        = -200.0
	ParticleMaxVX        = 200.0
	ParticleMinVY        = -600.0
	ParticleMaxVY        = -400.0
	ParticleMaxAngularV  = 360.0 // 度/秒，取值 [-360, 360]
	ParticleMinScale     = 0.3
	ParticleMaxScale     = 0.5
	ParticleTextureSize  = 24.0
	ParticleFallbackSize = 10.0

	// 生命周期（秒）：弹出 → 保持 → 淡出
	ParticlePopIn = 0.15
	ParticleHold  = 1.5 // 从生成时刻算起
	ParticleFade  = 0.5
)

// ParticleLifetime 粒子总寿命
const ParticleLifetime = ParticleHold + ParticleFade

// ConfettiTexture 彩纸纹理键
const ConfettiTexture = "confetti"

var confettiPalette = []color.RGBA{
	render.RGB(0xff5e5b),
	render.RGB(0xffd166),
	render.RGB(0x06d6a0),
	render.RGB(0x118ab2),
	render.RGB(0xef476f),
	render.RGB(0xf8f9fa),
}

// Burster 生成粒子爆发的接口，奖励序列只依赖这个接口
type Burster interface {
	SpawnBurst(originX, originY float64, count int)
}

// ParticleBurstSystem 管理奖励彩纸粒子的生成、运动和销毁
//
// 每个粒子是一个实体，带 PositionComponent 和 ParticleComponent。
// 粒子之间没有任何交互，只受重力影响。
type ParticleBurstSystem struct {
	entityManager *ecs.EntityManager
	surface       render.Surface
	rng           *rand.Rand
	clock         float64
}

// NewParticleBurstSystem 创建粒子系统，rng 为 nil 时使用随机种子
func NewParticleBurstSystem(em *ecs.EntityManager, surface render.Surface, rng *rand.Rand) *ParticleBurstSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &ParticleBurstSystem{
		entityManager: em,
		surface:       surface,
		rng:           rng,
	}
}

// ClampBurstCount 将数量限制在 [BurstMinCount, BurstMaxCount]
func ClampBurstCount(count int) int {
	if count < BurstMinCount {
		return BurstMinCount
	}
	if count > BurstMaxCount {
		return BurstMaxCount
	}
	return count
}

// SpawnBurst 在 (originX, originY) 生成一次粒子爆发
// count 超出 [15, 20] 时被截断
func (ps *ParticleBurstSystem) SpawnBurst(originX, originY float64, count int) {
	count = ClampBurstCount(count)
	for i := 0; i < count; i++ {
		ps.spawnParticle(originX, originY)
	}
	log.Printf("[ParticleBurstSystem] Spawned burst of %d particles at (%.0f, %.0f)", count, originX, originY)
}

func (ps *ParticleBurstSystem) spawnParticle(x, y float64) {
	rng := ps.rng
	id := ps.entityManager.CreateEntity()

	targetScale := particle.RandomInRange(rng, ParticleMinScale, ParticleMaxScale)
	tint := confettiPalette[rng.Intn(len(confettiPalette))]

	p := &components.ParticleComponent{
		VelocityX:       particle.RandomInRange(rng, ParticleMinVX, ParticleMaxVX),
		VelocityY:       particle.RandomInRange(rng, ParticleMinVY, ParticleMaxVY),
		Rotation:        particle.RandomInRange(rng, 0, 360),
		AngularVelocity: particle.RandomInRange(rng, -ParticleMaxAngularV, ParticleMaxAngularV),
		Scale:           0,
		TargetScale:     targetScale,
		Alpha:           1,
		Tint:            tint,
		SpawnTime:       ps.clock,
		Lifetime:        ParticleLifetime,
		ScaleCurve: particle.Curve{
			Keyframes:     []particle.Keyframe{{Time: 0, Value: 0}, {Time: ParticlePopIn, Value: targetScale}},
			Interpolation: particle.EaseOut,
		},
		AlphaCurve: particle.Curve{
			Keyframes: []particle.Keyframe{
				{Time: 0, Value: 1},
				{Time: ParticleHold, Value: 1},
				{Time: ParticleLifetime, Value: 0},
			},
			Interpolation: particle.Linear,
		},
	}

	sprite := render.NewSprite(ConfettiTexture, x, y, ParticleTextureSize, ParticleTextureSize)
	sprite.Z = 100
	sprite.Rotation = p.Rotation
	sprite.SetScale(0)
	sprite.Tint = &p.Tint
	if !ps.surface.HasTexture(ConfettiTexture) {
		sprite.Width, sprite.Height = ParticleFallbackSize, ParticleFallbackSize*0.6
		sprite.Tint = nil
		sprite.Placeholder = render.NewShape(render.ShapeRect, 0, 0, sprite.Width, sprite.Height, tint)
	}
	p.Sprite = sprite
	ps.surface.Add(sprite)

	ecs.AddComponent(ps.entityManager, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(ps.entityManager, id, p)
}

// Update 推进所有粒子 dt 秒
//
// 顺序：重力与位移 → 年龄 → 曲线求值并同步到精灵 → 到期销毁 → 清理实体
func (ps *ParticleBurstSystem) Update(dt float64) {
	ps.clock += dt

	ids := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](ps.entityManager)
	for _, id := range ids {
		p, ok := ecs.GetComponent[*components.ParticleComponent](ps.entityManager, id)
		if !ok {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](ps.entityManager, id)
		if !ok {
			continue
		}

		p.VelocityY += ParticleGravity * dt
		pos.X += p.VelocityX * dt
		pos.Y += p.VelocityY * dt
		p.Rotation += p.AngularVelocity * dt

		p.Age += dt

		p.Scale = p.ScaleCurve.Sample(p.Age)
		p.Alpha = p.AlphaCurve.Sample(p.Age)
		if p.Sprite != nil {
			p.Sprite.X, p.Sprite.Y = pos.X, pos.Y
			p.Sprite.Rotation = p.Rotation
			p.Sprite.SetScale(p.Scale)
			p.Sprite.Alpha = p.Alpha
		}

		if p.Age >= p.Lifetime-1e-9 {
			if p.Sprite != nil {
				ps.surface.Remove(p.Sprite)
			}
			ps.entityManager.DestroyEntity(id)
		}
	}

	ps.entityManager.RemoveMarkedEntities()
}

// LiveCount 返回存活粒子数
func (ps *ParticleBurstSystem) LiveCount() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](ps.entityManager))
}

// ParticleSnapshot 粒子状态快照（测试与调试用）
type ParticleSnapshot struct {
	X, Y            float64
	VelocityX       float64
	VelocityY       float64
	AngularVelocity float64
	Rotation        float64
	Scale           float64
	TargetScale     float64
	Alpha           float64
	Age             float64
	Lifetime        float64
}

// Particles 返回所有存活粒子的快照，按实体 ID 排序
func (ps *ParticleBurstSystem) Particles() []ParticleSnapshot {
	ids := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](ps.entityManager)
	out := make([]ParticleSnapshot, 0, len(ids))
	for _, id := range ids {
		p, _ := ecs.GetComponent[*components.ParticleComponent](ps.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.entityManager, id)
		out = append(out, ParticleSnapshot{
			X:               pos.X,
			Y:               pos.Y,
			VelocityX:       p.VelocityX,
			VelocityY:       p.VelocityY,
			AngularVelocity: p.AngularVelocity,
			Rotation:        p.Rotation,
			Scale:           p.Scale,
			TargetScale:     p.TargetScale,
			Alpha:           p.Alpha,
			Age:             p.Age,
			Lifetime:        p.Lifetime,
		})
	}
	return out
}

// Clear 立即移除所有粒子
func (ps *ParticleBurstSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](ps.entityManager) {
		if p, ok := ecs.GetComponent[*components.ParticleComponent](ps.entityManager, id); ok && p.Sprite != nil {
			ps.surface.Remove(p.Sprite)
		}
		ps.entityManager.DestroyEntity(id)
	}
	ps.entityManager.RemoveMarkedEntities()
}
