package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"smashduel/internal/config"
	"smashduel/internal/domain"
	"smashduel/internal/engine"
	"smashduel/internal/transport/rest"
	"smashduel/internal/transport/ws"
)

func main() {
	matchID := flag.String("match", "", "match id to play")
	side := flag.String("side", "", "my team side (A or B)")
	flag.Parse()

	cfg := config.Load()
	logger := newLogger(cfg.Logging)

	if *matchID == "" || !domain.TeamSide(*side).Valid() {
		fmt.Fprintln(os.Stderr, "usage: smashduel -match <id> -side <A|B>")
		os.Exit(2)
	}

	logger.Info().
		Str("matchID", *matchID).
		Str("side", *side).
		Str("api", cfg.API.BaseURL).
		Msg("starting smash client")

	api := rest.New(cfg.API.BaseURL, cfg.API.Token, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if info, err := api.Match(ctx, *matchID); err != nil {
		logger.Warn().Err(err).Msg("could not fetch match metadata")
	} else {
		logger.Info().
			Str("code", info.Code).
			Str("status", info.Status).
			Int("scoreA", info.ScoreTeamA).
			Int("scoreB", info.ScoreTeamB).
			Msg("joined match")
	}
	conn, err := ws.Dial(ctx, cfg.API.WSURL, cfg.API.Token, logger)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("websocket dial failed")
	}
	defer conn.Close()

	source := engine.NewQuestionSource(api, logger)
	coordinator := engine.NewCoordinator(conn, conn, source, logger)

	ui := newConsoleUI(coordinator)
	coordinator.SetUpdateHook(ui.Render)

	if err := coordinator.Start(*matchID, domain.TeamSide(*side)); err != nil {
		logger.Fatal().Err(err).Msg("failed to start session")
	}
	defer coordinator.End()

	// Read player commands until interrupted or the input closes
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	inputDone := make(chan struct{})
	go func() {
		defer close(inputDone)
		ui.ReadCommands(os.Stdin)
	}()

	select {
	case <-quit:
	case <-inputDone:
	}

	logger.Info().Msg("shutting down")
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// consoleUI renders snapshots and translates typed commands into intents
type consoleUI struct {
	coordinator *engine.Coordinator
	lastPhase   domain.Phase
	lastTurn    int
}

func newConsoleUI(coordinator *engine.Coordinator) *consoleUI {
	return &consoleUI{coordinator: coordinator}
}

// Render prints the state. Full block on phase or turn change, a single
// carriage-returned line for countdown ticks.
func (u *consoleUI) Render(snap engine.Snapshot) {
	if snap.Phase == u.lastPhase && snap.Turn.Number == u.lastTurn {
		if snap.RemainingMs > 0 {
			fmt.Printf("\r  %5.2fs remaining ", float64(snap.RemainingMs)/1000)
		}
		return
	}
	u.lastPhase = snap.Phase
	u.lastTurn = snap.Turn.Number

	fmt.Println()
	fmt.Printf("=== turn %d | %s | score A %d - B %d ===\n",
		snap.Turn.Number, snap.Phase, snap.Scores.ScoreA, snap.Scores.ScoreB)

	role := "spectating"
	if snap.IsAttacker() {
		role = "attacking"
	} else if snap.IsDefender() {
		role = "defending"
	}
	fmt.Printf("you are team %s (%s)\n", snap.MySide, role)

	switch detail := snap.Detail.(type) {
	case engine.ConcertationDetail:
		fmt.Println("concertation in progress")
	case engine.QuestionDetail:
		if snap.IsAttacker() {
			u.renderPool(detail)
		} else {
			fmt.Println("waiting for the question...")
		}
	case engine.ValidateDetail:
		fmt.Printf("question: %s\n", detail.Question)
	case engine.AnswerDetail:
		fmt.Printf("question: %s\n", detail.Question)
	case engine.ResultDetail:
		fmt.Printf("question: %s\n", detail.Question)
		fmt.Printf("answer:   %s\n", detail.Answer)
		if detail.ExpectedAnswer != "" {
			fmt.Printf("expected: %s\n", detail.ExpectedAnswer)
		}
	}

	if out := snap.Scores.LastResult; out != nil {
		fmt.Printf("result: %s (+%d)\n", out.Message, out.Points)
	}
	if !snap.Active {
		fmt.Println("session over")
	}
}

func (u *consoleUI) renderPool(detail engine.QuestionDetail) {
	if detail.Mode == domain.ModeUnset {
		fmt.Println("choose 'mode pool' or 'mode custom'")
		return
	}
	if detail.Mode == domain.ModeCustom {
		fmt.Println("type 'q <text>' to submit your question")
		return
	}
	switch detail.PoolState {
	case engine.PoolLoading:
		fmt.Println("loading question pool...")
	case engine.PoolUnavailable:
		fmt.Println("question pool unavailable, 'retry' to refetch or 'mode custom'")
	case engine.PoolReady:
		if len(detail.Pool) == 0 {
			fmt.Println("question pool is empty")
			return
		}
		for i, q := range detail.Pool {
			marker := " "
			if detail.Selected != nil && detail.Selected.ID == q.ID {
				marker = ">"
			}
			fmt.Printf(" %s %2d. [%s] %s\n", marker, i+1, q.Difficulty, q.Text)
		}
	}
}

// ReadCommands parses player commands line by line until EOF or quit
func (u *consoleUI) ReadCommands(input *os.File) {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "top":
			u.coordinator.PressTop()
		case "mode":
			u.setMode(arg)
		case "pick":
			u.pick(arg)
		case "retry":
			u.coordinator.Questions().RetryFetch()
		case "q":
			u.coordinator.SubmitQuestion(arg)
		case "send":
			u.coordinator.SubmitSelectedQuestion()
		case "valid":
			u.coordinator.SubmitValidation(true, "")
		case "invalid":
			u.coordinator.SubmitValidation(false, arg)
		case "a":
			u.coordinator.SubmitAnswer(arg)
		case "ok":
			u.coordinator.SubmitResult(true)
		case "ko":
			u.coordinator.SubmitResult(false)
		case "state":
			u.lastPhase = ""
			u.Render(u.coordinator.Snapshot())
		case "quit", "exit":
			return
		default:
			fmt.Println("commands: top | mode pool|custom | pick <n> | retry | q <text> | send | valid | invalid [reason] | a <text> | ok | ko | state | quit")
		}
	}
}

func (u *consoleUI) setMode(mode string) {
	switch mode {
	case "pool":
		u.coordinator.Questions().ChoosePoolMode()
	case "custom":
		if err := u.coordinator.Questions().ChooseCustomMode(); err != nil {
			fmt.Println("cannot switch mode:", err)
		}
	default:
		fmt.Println("mode must be 'pool' or 'custom'")
	}
}

func (u *consoleUI) pick(arg string) {
	var index int
	if _, err := fmt.Sscanf(arg, "%d", &index); err != nil {
		fmt.Println("pick needs a question number")
		return
	}
	pool := u.coordinator.Questions().Pool()
	if index < 1 || index > len(pool) {
		fmt.Println("no such question")
		return
	}
	if _, err := u.coordinator.Questions().Select(pool[index-1].ID); err != nil {
		fmt.Println("cannot select:", err)
	}
}
