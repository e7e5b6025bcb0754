package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

// ValkeyClient records which record keys each stage has finished, so a
// record's journey through the chain can be traced operationally. It never
// gates processing: stages run the same whether or not a key was seen before,
// and marking failures are logged, not fatal.
type ValkeyClient struct {
	Client valkey.Client
}

const processedKeyTTLSeconds = 86400

// InitValkey connects once per cold start. Returns nil when
// VALKEY_INIT_ADDRESS is unset, which disables tracing entirely.
func InitValkey() *ValkeyClient {
	valkeyOnce.Do(func() {
		valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
		if valkeyAddr == "" {
			slog.Info("[ValkeyClient] VALKEY_INIT_ADDRESS not set, stage tracing disabled")
			return
		}

		opts := valkey.ClientOption{
			InitAddress:      []string{valkeyAddr},
			Password:         os.Getenv("VALKEY_PASSWORD"),
			ConnWriteTimeout: 5 * time.Second,
			SelectDB:         0,
		}
		if os.Getenv("VALKEY_TLS") == "true" {
			opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
		}

		client, err := valkey.NewClient(opts)
		if err != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if res := client.Do(ctx, client.B().Ping().Build()); res.Error() != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", res.Error()))
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")
		valkeyInstance = &ValkeyClient{Client: client}
	})
	return valkeyInstance
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

// MarkProcessed adds the record key to the stage's processed set and refreshes
// its TTL.
func (vc *ValkeyClient) MarkProcessed(ctx context.Context, stage string, key string) error {
	setKey := stageSetKey(stage)
	responses := vc.Client.DoMulti(ctx,
		vc.Client.B().Sadd().Key(setKey).Member(key).Build(),
		vc.Client.B().Expire().Key(setKey).Seconds(processedKeyTTLSeconds).Build(),
	)
	for _, res := range responses {
		if err := res.Error(); err != nil {
			return err
		}
	}
	return nil
}

// WasProcessed reports whether a stage already handled the key. Informational
// only; redelivered notifications are still processed in full.
func (vc *ValkeyClient) WasProcessed(ctx context.Context, stage string, key string) bool {
	res := vc.Client.Do(ctx, vc.Client.B().Sismember().Key(stageSetKey(stage)).Member(key).Build())
	ok, err := res.AsBool()
	if err != nil {
		return false
	}
	return ok
}

func stageSetKey(stage string) string {
	return "reviewflow:" + stage + ":processed"
}
