package game

// TimerHandle 一次性定时回调的句柄
type TimerHandle interface {
	// Cancel 取消定时器，取消后回调保证不再触发
	// 对已触发或已取消的定时器调用是空操作
	Cancel()
}

// TimerService 定时回调服务
//
// 喷发调度器只依赖这个接口，核心逻辑与宿主的定时原语解耦，
// 可以在测试中注入手动推进的时钟。默认实现是 FrameClock。
type TimerService interface {
	// Schedule 在 delayMs 毫秒后触发一次 fn，返回可取消的句柄
	Schedule(delayMs float64, fn func()) TimerHandle
}

// FrameClock 帧驱动的单线程时钟
//
// 所有回调都在 Advance 的调用栈内同步触发，不创建任何 goroutine，
// 符合效果层"宿主渲染循环单线程推进、内部不得阻塞"的并发模型。
type FrameClock struct {
	now    float64 // 累计时间（秒）
	timers []*frameTimer
}

type frameTimer struct {
	dueAt     float64
	fn        func()
	cancelled bool
}

// Cancel 实现 TimerHandle
func (t *frameTimer) Cancel() {
	t.cancelled = true
}

// NewFrameClock 创建一个帧驱动时钟
func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// Now 当前累计时间（秒）
func (c *FrameClock) Now() float64 {
	return c.now
}

// Pending 当前未触发且未取消的定时器数量
func (c *FrameClock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Schedule 实现 TimerService
func (c *FrameClock) Schedule(delayMs float64, fn func()) TimerHandle {
	if delayMs < 0 {
		delayMs = 0
	}
	t := &frameTimer{dueAt: c.now + delayMs/1000.0, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance 推进时钟并触发所有到期回调
//
// 回调内重新 Schedule 的定时器最早在下一次 Advance 触发，
// 零间隔配置因此不会在一帧内无限重入
func (c *FrameClock) Advance(dt float64) {
	c.now += dt

	if len(c.timers) == 0 {
		return
	}

	pending := c.timers
	c.timers = nil // 回调内的 Schedule 追加到新切片

	var remaining []*frameTimer
	for _, t := range pending {
		if t.cancelled {
			continue
		}
		if t.dueAt <= c.now {
			t.fn()
		} else {
			remaining = append(remaining, t)
		}
	}
	c.timers = append(c.timers, remaining...)
}
