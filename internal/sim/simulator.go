package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/physics"
)

// Simulator runs the chain frame by frame. It is driven either by a UI
// frame callback through Frame, or headless through Run.
type Simulator struct {
	chain         *physics.Chain
	stepsPerFrame int
	paused        bool
	frame         int
	metrics       []Metric
	observers     []Observer
}

func New(chain *physics.Chain, stepsPerFrame int) *Simulator {
	if stepsPerFrame <= 0 {
		stepsPerFrame = StepsPerFrame
	}
	return &Simulator{
		chain:         chain,
		stepsPerFrame: stepsPerFrame,
		metrics:       make([]Metric, 0),
		observers:     make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Chain() *physics.Chain { return s.chain }
func (s *Simulator) Paused() bool          { return s.paused }
func (s *Simulator) SetPaused(p bool)      { s.paused = p }
func (s *Simulator) TogglePause()          { s.paused = !s.paused }
func (s *Simulator) Frames() int           { return s.frame }
func (s *Simulator) StepsPerFrame() int    { return s.stepsPerFrame }

// Dt is the sub-step size; a whole frame advances one time unit.
func (s *Simulator) Dt() float64 { return 1 / float64(s.stepsPerFrame) }

// Frame runs one frame worth of sub-steps unless paused and reports whether
// the chain moved.
func (s *Simulator) Frame() bool {
	if s.paused {
		return false
	}
	dt := s.Dt()
	for i := 0; i < s.stepsPerFrame; i++ {
		s.chain.Step(dt)
	}
	s.frame++

	for _, m := range s.metrics {
		m.Observe(s.chain, s.frame)
	}
	for _, obs := range s.observers {
		obs.OnFrame(s.chain, s.frame)
	}
	return true
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.StepsPerFrame <= 0 {
		return fmt.Errorf("%w: steps per frame must be positive, got %d", dynamo.ErrParameterBounds, cfg.StepsPerFrame)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, cfg.Frames)
	}
	return nil
}

func (s *Simulator) sample() Sample {
	ke, pe := s.chain.KineticEnergy(), s.chain.PotentialEnergy()
	return Sample{
		Frame:     s.frame,
		Time:      float64(s.frame),
		Kinetic:   ke,
		Potential: pe,
		Total:     ke + pe,
		Positions: s.chain.Positions(),
	}
}

// Run drives the simulator headless for cfg.Frames frames, ignoring the
// paused flag. The initial state is recorded as the first sample and is the
// first state metrics observe.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	s.stepsPerFrame = cfg.StepsPerFrame
	wasPaused := s.paused
	s.paused = false
	defer func() { s.paused = wasPaused }()

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Samples: make([]Sample, 0, cfg.Frames+1),
		Metrics: make(map[string]float64),
	}
	result.Samples = append(result.Samples, s.sample())
	// metrics see every recorded sample, the initial state included
	for _, m := range s.metrics {
		m.Observe(s.chain, s.frame)
	}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.Frame()
		result.FramesRun++

		if cfg.ValidateState && !s.chain.IsValid() {
			return result, &dynamo.SimulationError{Frame: s.frame, Time: float64(s.frame), Wrapped: dynamo.ErrInvalidState}
		}
		result.Samples = append(result.Samples, s.sample())
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
