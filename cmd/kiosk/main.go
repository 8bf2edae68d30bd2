package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hypeclust/kiosk-core/config"
	"github.com/hypeclust/kiosk-core/conversation"
	kiosk "github.com/hypeclust/kiosk-core/core"
	"github.com/hypeclust/kiosk-core/core/audio/miniaudio"
	"github.com/hypeclust/kiosk-core/core/events"
	"github.com/hypeclust/kiosk-core/core/orders"
	"github.com/hypeclust/kiosk-core/core/orders/redisstore"
	sttdeepgram "github.com/hypeclust/kiosk-core/core/speechtotext/deepgram"
	ttsdeepgram "github.com/hypeclust/kiosk-core/core/texttospeech/deepgram"
	"github.com/hypeclust/kiosk-core/pkg/log"
	redispkg "github.com/hypeclust/kiosk-core/pkg/redis"
	"github.com/hypeclust/kiosk-core/presence"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "kiosk",
	Short: "Runs the voice-ordering kiosk",
	Long:  `kiosk drives an unattended voice-ordering station: it wakes on a proximity trigger, converses with customers over the voice pipeline, keeps the order cart in sync with the conversational backend and announces completed orders to the payment terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(cfgFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./kiosk.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgFile string) error {
	logger := log.NewLogger()

	if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Fatal(log.Fields{"error": err}, "Failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The backend decides which mode the kiosk runs in; the local setting
	// only applies when the backend is unreachable.
	if mode, err := config.FetchMode(ctx, cfg.BackendBaseURL); err != nil {
		logger.Warnf("Could not fetch mode from backend, staying in %s: %v", cfg.Mode, err)
	} else {
		cfg.Mode = mode
	}
	logger.Infof("Starting kiosk in %s mode", cfg.Mode)

	redisClient := redispkg.New(cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	options := []kiosk.Option{
		kiosk.WithPaymentNotifier(presence.NewPaymentPublisher(redisClient, cfg.PaymentChannel)),
		kiosk.WithHistoryStore(redisstore.New(redisClient, cfg.HistoryKey)),
		kiosk.WithWatchdogPeriod(cfg.WatchdogPeriod),
		kiosk.WithStandbyDelay(cfg.StandbyDelay),
		kiosk.WithProcessingTimeout(cfg.ProcessingTimeout),
	}
	if cfg.Greeting != "" {
		options = append(options, kiosk.WithGreeting(cfg.Greeting))
	}

	channel := conversation.NewClient(cfg.ConversationWSURL, cfg.BackendBaseURL)
	connected := false
	if err := channel.Dial(ctx); err != nil {
		logger.Warnf("Conversation backend unavailable, running degraded: %v", err)
	} else {
		connected = true
		defer channel.Close()
		options = append(options, kiosk.WithConversationChannel(channel))
	}

	if cfg.DeepgramAPIKey != "" {
		os.Setenv("DEEPGRAM_API_KEY", cfg.DeepgramAPIKey)
		options = append(options,
			kiosk.WithSpeechToTextClient(sttdeepgram.NewTranscriptionClient()),
			kiosk.WithTextToSpeechClient(ttsdeepgram.NewSpeaker(cfg.DeepgramAPIKey, cfg.TTSModel)),
		)

		if device, err := miniaudio.NewClient(); err != nil {
			logger.Warnf("Audio devices unavailable, running without local audio: %v", err)
		} else {
			defer device.Close()
			options = append(options,
				kiosk.WithAudioInput(device),
				kiosk.WithAudioOutput(device),
			)
		}
	} else {
		logger.Warn("No Deepgram API key configured, voice pipeline disabled")
	}

	k := kiosk.New(options...)
	k.Start(ctx,
		kiosk.WithSessionCallback(func(session kiosk.Session) {
			logger.Infof("Session: awake=%v activity=%s", session.Awake, session.VoiceActivity)
		}),
		kiosk.WithMessageCallback(func(message kiosk.Message) {
			logger.Infof("[%s] %s", message.Role, message.Text)
		}),
		kiosk.WithCartCallback(func(cart []orders.Item) {
			logger.Infof("Cart: %d items", len(cart))
		}),
		kiosk.WithOrderCompletedCallback(func(order orders.CompletedOrder) {
			logger.Infof("Order %s completed, total $%s", order.ID, orders.FormatAmount(order.Total))
		}),
	)
	defer k.Close()

	if connected {
		go func() {
			err := channel.Listen(ctx, conversation.Callbacks{
				OnAssistantResponse: k.HandleAssistantReply,
				OnCartItemAdded:     k.HandleCartItemAdded,
				OnCartItemRemoved:   k.HandleCartItemRemoved,
				OnCartCleared:       k.HandleCartCleared,
				OnOrderFinalize:     k.HandleOrderFinalize,
			})
			if err != nil {
				logger.Errorf("Conversation listener stopped: %v", err)
			}
		}()
	}

	go func() {
		err := presence.NewListener(redisClient, cfg.TriggerChannel).Listen(ctx, presence.Callbacks{
			OnPresenceDetected: k.PresenceDetected,
			OnPresenceLost:     k.PresenceLost,
		})
		if err != nil {
			logger.Errorf("Presence listener stopped: %v", err)
		}
	}()

	if cfg.Mode == "dev" || cfg.Mode == "test" {
		go runSimulationShell(ctx, k, logger.Infof)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Kiosk started")
	<-sigChan
	logger.Info("Shutting down kiosk...")
	return nil
}

// runSimulationShell reads commands from stdin so the interaction flow can be
// exercised without the sensor, microphone and backend hardware.
func runSimulationShell(ctx context.Context, k *kiosk.Kiosk, printf func(string, ...interface{})) {
	printf("Simulation shell: consent | on | off | mic | complete | say <text> | reply <text>")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		command, rest, _ := strings.Cut(line, " ")
		switch command {
		case "consent":
			k.RecordConsent()
		case "on":
			k.PresenceDetected()
		case "off":
			k.PresenceLost()
		case "mic":
			k.ToggleMic()
		case "complete":
			k.CompleteOrder()
		case "say":
			k.Handle(events.NewUserTranscriptFinal(rest))
		case "reply":
			k.HandleAssistantReply(rest)
		case "":
		default:
			printf("Unknown command %q", command)
		}
	}
}
