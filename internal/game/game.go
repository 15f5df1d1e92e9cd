package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Swarm-Front/internal/battle"
	"github.com/Garsondee/Swarm-Front/internal/render"
)

// borderWidth is the pixel gap between the window edge and the battlefield.
const borderWidth = 16

// reportInterval is how often, in ticks, the reporter samples the battle.
const reportInterval = 60

// Options configures a Game.
type Options struct {
	Bench    *battle.Benchmark
	SimSpeed float64
	Log      zerolog.Logger
}

type Game struct {
	width      int
	height     int
	gameWidth  int // playfield width (event panel takes the rest)
	gameHeight int
	offX       int
	offY       int

	world    *battle.World
	bench    *battle.Benchmark
	reporter *battle.SimReporter
	panel    *EventPanel
	outcome  *battle.BattleOutcomeReason
	log      zerolog.Logger
	frame    int

	trails   *trailLayer
	renderer *ebitenRenderer
	worldBuf *ebiten.Image

	showHUD  bool
	prevKeys map[ebiten.Key]bool
	status   string // transient HUD message, e.g. clipboard result

	// Camera pan + zoom.
	camX    float64
	camY    float64
	camZoom float64

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64
}

// New wraps w in an ebiten game. The Game owns w and closes it on exit.
func New(w *battle.World, opts Options) *Game {
	if opts.Bench == nil {
		opts.Bench = battle.NewBenchmark(0, 0)
	}
	if opts.SimSpeed <= 0 {
		opts.SimSpeed = 1
	}
	g := &Game{
		width:      borderWidth + render.ScreenW + borderWidth + logPanelWidth,
		height:     borderWidth + render.ScreenH + borderWidth,
		gameWidth:  render.ScreenW,
		gameHeight: render.ScreenH,
		offX:       borderWidth,
		offY:       borderWidth,
		world:      w,
		bench:      opts.Bench,
		reporter:   battle.NewSimReporter(0),
		panel:      NewEventPanel(),
		log:        opts.Log,
		showHUD:    true,
		prevKeys:   make(map[ebiten.Key]bool),
		camX:       render.ScreenW / 2,
		camY:       render.ScreenH / 2,
		camZoom:    1,
		simSpeed:   opts.SimSpeed,
	}
	g.trails = newTrailLayer(render.ScreenW, render.ScreenH, groundColor)
	g.worldBuf = ebiten.NewImage(render.ScreenW, render.ScreenH)
	g.renderer = newEbitenRenderer(g.trails)
	return g
}

func (g *Game) Update() error {
	// Handle input every frame regardless of sim speed.
	g.handleInput()

	if g.simSpeed <= 0 {
		return nil
	}

	// For speeds > 1 run multiple ticks per frame; for speeds < 1
	// accumulate fractions.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		if !g.bench.Running() {
			g.tickAccum = 0
			break
		}
		g.simTick()
	}
	return nil
}

// simTick runs one logical step and its bookkeeping.
func (g *Game) simTick() {
	w := g.world
	w.Tick(1)
	g.frame++

	units := w.Units()
	for _, ev := range w.Events() {
		if ev.Kind == battle.EventHit {
			continue
		}
		g.panel.Add(ev, battle.UnitLabel(&units[ev.Unit]))
	}

	if w.TickCount()%reportInterval == 0 {
		g.reporter.Collect(w)
		if rpt := g.reporter.Latest(); rpt != nil {
			g.log.Debug().
				Int("tick", rpt.Tick).
				Int("blue_alive", rpt.Alive[battle.FactionBlue]).
				Int("red_alive", rpt.Alive[battle.FactionRed]).
				Int("projectiles", rpt.Projectiles).
				Msg("battle sample")
		}
	}

	if g.bench.EndFrame() {
		o := battle.DetermineBattleOutcome(w)
		g.outcome = &o
		g.log.Info().
			Int("frames", g.bench.Frames()).
			Dur("duration", g.bench.Duration()).
			Float64("speedup", g.bench.Speedup()).
			Str("outcome", o.Outcome.String()).
			Msg("benchmark complete")
	}
}

// pressed reports a key going down this frame.
func (g *Game) pressed(k ebiten.Key, current map[ebiten.Key]bool) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !g.prevKeys[k]
}

// handleInput processes camera, speed and toggle keys (edge-triggered).
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	// H: toggle HUD key legend.
	if g.pressed(ebiten.KeyH, currentKeys) {
		g.showHUD = !g.showHUD
	}

	// C: copy the benchmark result line.
	if g.pressed(ebiten.KeyC, currentKeys) {
		g.copyResult()
	}

	// Camera pan: WASD or arrow keys.
	panSpeed := 6.0 / g.camZoom
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camY -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camY += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camX -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camX += panSpeed
	}

	// Camera zoom: mouse wheel or =/- keys.
	_, wy := ebiten.Wheel()
	if wy != 0 {
		g.camZoom *= math.Pow(1.12, wy)
	}
	if g.pressed(ebiten.KeyEqual, currentKeys) {
		g.camZoom *= 1.25
	}
	if g.pressed(ebiten.KeyMinus, currentKeys) {
		g.camZoom /= 1.25
	}
	g.clampCamera()

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	if g.pressed(ebiten.KeyP, currentKeys) {
		g.simSpeed = togglePause(g.simSpeed)
	}
	if g.pressed(ebiten.KeyComma, currentKeys) {
		g.simSpeed = slower(g.simSpeed)
	}
	if g.pressed(ebiten.KeyPeriod, currentKeys) {
		g.simSpeed = faster(g.simSpeed)
	}

	g.prevKeys = currentKeys
}

// clampCamera keeps the view inside the battlefield.
func (g *Game) clampCamera() {
	const zoomMin, zoomMax = 1.0, 4.0
	g.camZoom = math.Max(zoomMin, math.Min(zoomMax, g.camZoom))
	halfVW := float64(g.gameWidth) / 2 / g.camZoom
	halfVH := float64(g.gameHeight) / 2 / g.camZoom
	g.camX = math.Max(halfVW, math.Min(float64(g.gameWidth)-halfVW, g.camX))
	g.camY = math.Max(halfVH, math.Min(float64(g.gameHeight)-halfVH, g.camY))
}

var simSpeeds = []float64{0, 0.5, 1, 2, 4}

func togglePause(s float64) float64 {
	if s > 0 {
		return 0
	}
	return 1
}

func slower(s float64) float64 {
	for i := len(simSpeeds) - 1; i >= 0; i-- {
		if simSpeeds[i] < s {
			return simSpeeds[i]
		}
	}
	return simSpeeds[0]
}

func faster(s float64) float64 {
	for _, v := range simSpeeds {
		if v > s {
			return v
		}
	}
	return simSpeeds[len(simSpeeds)-1]
}

func (g *Game) copyResult() {
	if !g.bench.Done() {
		g.status = "benchmark still running"
		return
	}
	line := g.bench.Result()
	if g.outcome != nil {
		line += " " + g.outcome.String()
	}
	if err := clipboard.WriteAll(line); err != nil {
		g.log.Warn().Err(err).Msg("copying benchmark result")
		g.status = "clipboard unavailable"
		return
	}
	g.status = "result copied"
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Window background: very dark, outside battlefield.
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	g.renderer.dst = g.worldBuf
	render.Frame(g.renderer, g.world, render.HUD{
		Frame: g.frame,
		Bench: g.bench,
		Lines: g.hudLines(),
	})

	// Camera transform: translate so camX/camY is at viewport centre, then scale.
	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(-g.camX, -g.camY)
	blit.GeoM.Scale(g.camZoom, g.camZoom)
	blit.GeoM.Translate(float64(g.gameWidth)/2, float64(g.gameHeight)/2)
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.worldBuf, &blit)

	// Battlefield border frame.
	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)

	// Event panel (screen coords).
	logX := g.offX + g.gameWidth + g.offX
	g.panel.Draw(screen, logX, g.height)

	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) hudLines() []string {
	var lines []string
	if g.outcome != nil {
		lines = append(lines, g.outcome.Outcome.String())
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}
	return lines
}

// benchLine shows progress through the frame budget and the reference time.
func benchLine(b *battle.Benchmark) string {
	return fmt.Sprintf("BENCH: %d/%d  ref %s", b.Frames(), b.MaxFrames(), battle.FormatDuration(b.Reference()))
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	speedStr := fmt.Sprintf("%.1fx", g.simSpeed)
	if g.simSpeed == 0 {
		speedStr = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("SIM: %s  P=pause  ,/. speed", speedStr),
		fmt.Sprintf("TICK: %d  %s", g.world.TickCount(), battle.FormatDuration(g.bench.Elapsed())),
		benchLine(g.bench),
		"WASD/arrows=pan  scroll,=/-=zoom",
		"C=copy result  H=toggle HUD",
	}
	const lineH = 12 // debug font line height
	x := g.offX + 6
	y := g.offY + g.gameHeight - len(lines)*lineH - 80
	vector.FillRect(screen, float32(x-4), float32(y-2), 230, float32(len(lines)*lineH+4),
		color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*lineH)
	}
	if g.camZoom != 1.0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("zoom: %.1fx", g.camZoom), g.offX+6, g.offY+render.ScreenH/2)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize returns the window dimensions the game lays out for.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}

// Close releases the World.
func (g *Game) Close() {
	g.world.Close()
}
