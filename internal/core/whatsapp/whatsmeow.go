package whatsapp

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
	_ "modernc.org/sqlite"
)

// WhatsmeowProvider is the real WhatsApp transport. One device session per
// instance; the pairing oracle answers from the device's login state.
type WhatsmeowProvider struct {
	client   *whatsmeow.Client
	storeURL string
}

func NewWhatsmeowProvider(storeURL string) *WhatsmeowProvider {
	return &WhatsmeowProvider{
		storeURL: storeURL,
	}
}

func (w *WhatsmeowProvider) GetProviderName() string {
	return "Whatsmeow"
}

func (w *WhatsmeowProvider) initStore() (*sqlstore.Container, error) {
	ctx := context.Background()
	dbLog := waLog.Stdout("Database", "ERROR", true)

	if w.storeURL != "" {
		log.Println("🌐 Using PostgreSQL database for WhatsApp store")
		container, err := sqlstore.New(ctx, "postgres", w.storeURL, dbLog)
		if err != nil {
			return nil, fmt.Errorf("failed to init PostgreSQL store: %w", err)
		}
		if err := container.Upgrade(ctx); err != nil {
			return nil, fmt.Errorf("failed to upgrade PostgreSQL schema: %w", err)
		}
		return container, nil
	}

	log.Println("💾 Using local SQLite store (store.db)")
	rawDB, err := sql.Open("sqlite", "file:store.db?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	if _, err = rawDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		log.Printf("⚠️ Failed to enable foreign_keys pragma: %v", err)
	}

	container := sqlstore.NewWithDB(rawDB, "sqlite", dbLog)
	if err := container.Upgrade(ctx); err != nil {
		return nil, fmt.Errorf("failed to upgrade SQLite schema: %w", err)
	}
	return container, nil
}

func (w *WhatsmeowProvider) Connect() error {
	container, err := w.initStore()
	if err != nil {
		return fmt.Errorf("failed to init store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get device: %w", err)
	}

	clientLog := waLog.Stdout("Client", "WARN", true)
	w.client = whatsmeow.NewClient(deviceStore, clientLog)

	if w.client.Store.ID == nil {
		// Not yet paired; connect and let the pairing flow drive the QR
		// scan. The connection stays up waiting for the device link.
		qrChan, _ := w.client.GetQRChannel(context.Background())
		if err := w.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		go func() {
			for evt := range qrChan {
				if evt.Event == "success" {
					log.Println("✅ WhatsApp device linked")
					return
				}
			}
		}()
		return nil
	}

	if err := w.client.Connect(); err != nil {
		return fmt.Errorf("failed to reconnect: %w", err)
	}
	log.Println("✅ Reconnected to WhatsApp")
	return nil
}

func (w *WhatsmeowProvider) Disconnect() {
	if w.client != nil {
		w.client.Disconnect()
		log.Println("🔌 Whatsmeow client disconnected")
	}
}

func (w *WhatsmeowProvider) SendMessage(phoneNumber, message string) error {
	if w.client == nil {
		return fmt.Errorf("client not initialized")
	}

	jid := types.NewJID(strings.TrimPrefix(phoneNumber, "+"), "s.whatsapp.net")
	msg := &waProto.Message{
		Conversation: proto.String(message),
	}

	_, err := w.client.SendMessage(context.Background(), jid, msg)
	return err
}

func (w *WhatsmeowProvider) StartListening(handler func(msg InboundMessage)) error {
	if w.client == nil {
		return fmt.Errorf("client not initialized")
	}

	w.client.AddEventHandler(func(evt interface{}) {
		msg, ok := evt.(*events.Message)
		if !ok || msg.Info.IsFromMe {
			return
		}
		text := msg.Message.GetConversation()
		if text == "" {
			text = msg.Message.GetExtendedTextMessage().GetText()
		}
		if text == "" {
			return
		}
		handler(InboundMessage{
			From: msg.Info.Sender.User,
			Text: text,
		})
	})
	return nil
}

// SessionConnected reports whether the device behind this provider is
// logged in. The token identifies the in-flight pairing attempt, not a
// separate device: whatsmeow runs one session per instance, so any
// completed login answers every outstanding attempt.
func (w *WhatsmeowProvider) SessionConnected(ctx context.Context, token string) (bool, error) {
	if w.client == nil {
		return false, fmt.Errorf("client not initialized")
	}
	return w.client.IsConnected() && w.client.IsLoggedIn(), nil
}

func (w *WhatsmeowProvider) IsConnected() bool {
	return w.client != nil && w.client.IsConnected()
}

// StartKeepAlive sends a presence update every minute so the session is
// not reaped as idle.
func (w *WhatsmeowProvider) StartKeepAlive(ctx context.Context) {
	if w.client == nil {
		return
	}

	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Keep-alive started (ping every 60s)")

	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 Keep-alive stopped")
			return
		case <-ticker.C:
			if w.client.IsConnected() {
				if err := w.client.SendPresence(ctx, types.PresenceAvailable); err != nil {
					log.Printf("⚠️ Keep-alive ping failed: %v", err)
				}
			}
		}
	}
}
