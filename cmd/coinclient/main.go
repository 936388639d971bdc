// coinclient is the drawing and keyboard shell around the client core. All
// reconstruction logic lives in the client package; this binary only samples
// keys, ships inputs, and draws the interpolated view.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/client"
	"github.com/KBhardwaj-007/Multiplayer-State-Synchronization/config"
)

const inputEveryNthTick = 2 // 120 TPS frame loop, 60 Hz input rate

var (
	backgroundColor = color.RGBA{30, 30, 30, 255}
	coinColor       = color.RGBA{255, 215, 0, 255}
	selfColor       = color.RGBA{100, 200, 255, 255}
	otherColor      = color.RGBA{255, 100, 100, 255}
)

type App struct {
	cli  *client.Client
	tick int
}

func (a *App) Update() error {
	if a.cli.Closed() {
		log.Println("coinclient: disconnected from server")
		return ebiten.Termination
	}

	a.tick++
	if a.cli.Started() && a.tick%inputEveryNthTick == 0 {
		dx, dy := 0.0, 0.0
		if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
			dx--
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
			dx++
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
			dy--
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
			dy++
		}
		if err := a.cli.SendInput(dx, dy, time.Now()); err != nil {
			log.Printf("coinclient: send input: %v", err)
		}
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	view, ok := a.cli.View(time.Now())
	if !ok || !a.cli.Started() {
		ebitenutil.DebugPrintAt(screen, "Waiting for players...", int(a.cli.Welcome().ArenaWidth)/2-60, int(a.cli.Welcome().ArenaHeight)/2)
		return
	}

	w := a.cli.Welcome()
	for _, c := range view.Coins {
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(w.CoinRadius), coinColor, true)
	}

	scores := "SCORES:"
	for _, p := range view.Players {
		col := otherColor
		name := p.ID
		if p.ID == w.PlayerID {
			col = selfColor
			name = "YOU"
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(w.PlayerRadius), col, true)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", p.Score), int(p.X)-4, int(p.Y)-int(w.PlayerRadius)-16)
		scores += fmt.Sprintf("  %s: %d", name, p.Score)
	}

	ebitenutil.DebugPrintAt(screen, scores, 10, 10)
	ebitenutil.DebugPrintAt(screen, "Simulated latency: 200ms each way", 10, int(w.ArenaHeight)-20)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.cli.Welcome().ArenaWidth), int(a.cli.Welcome().ArenaHeight)
}

func main() {
	serverURL := flag.String("server", "ws://localhost:8765/ws", "server websocket URL")
	flag.Parse()

	cfg := config.Load()
	cli, err := client.Dial(*serverURL, cfg.InterpDelay)
	if err != nil {
		log.Fatalf("coinclient: %v", err)
	}
	defer cli.Close()
	log.Printf("coinclient: connected as %s", cli.Welcome().PlayerID)

	ebiten.SetWindowTitle("Coin Collector")
	ebiten.SetWindowSize(int(cli.Welcome().ArenaWidth)*2, int(cli.Welcome().ArenaHeight)*2)
	ebiten.SetTPS(120)

	if err := ebiten.RunGame(&App{cli: cli}); err != nil {
		log.Fatalf("coinclient: %v", err)
	}
}
