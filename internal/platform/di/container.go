// internal/platform/di/container.go
package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	firebase "firebase.google.com/go/v4"
	_ "github.com/lib/pq"
	"google.golang.org/api/option"

	httpin "tokoonline/internal/adapters/in/http"
	handler "tokoonline/internal/adapters/in/http/handler"
	"tokoonline/internal/adapters/in/http/middleware"
	dbout "tokoonline/internal/adapters/out/db"
	fsout "tokoonline/internal/adapters/out/firestore"
	httpout "tokoonline/internal/adapters/out/http"
	session "tokoonline/internal/application/session"
	cartdom "tokoonline/internal/domain/cart"
	"tokoonline/internal/infra/config"
)

// Container wires config -> clients -> adapters -> sessions -> router.
type Container struct {
	Config *config.Config

	Firestore    *firestore.Client
	FirebaseAuth *middleware.FirebaseAuthClient
	DB           *sql.DB

	Store    cartdom.Store
	Sessions *session.Manager
}

// NewContainer builds the full dependency graph.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		cfg = config.Load()
	}

	c := &Container{Config: cfg}

	var clientOpts []option.ClientOption
	if f := strings.TrimSpace(cfg.CredentialsFile); f != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(f))
	}

	// Firebase Auth (best-effort): without it every request is anonymous,
	// which the core handles; the server still boots.
	{
		fbCfg := &firebase.Config{ProjectID: strings.TrimSpace(cfg.ProjectID)}
		fbApp, err := firebase.NewApp(ctx, fbCfg, clientOpts...)
		if err != nil {
			log.Printf("[di] WARN: firebase app init failed: %v", err)
		} else {
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[di] WARN: firebase auth init failed: %v", err)
			} else {
				c.FirebaseAuth = authClient
				log.Printf("[di] Firebase Auth initialized")
			}
		}
	}

	store, err := c.buildStore(ctx, clientOpts)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Store = store

	c.Sessions = session.NewManager(
		middleware.ContextSessionGate{},
		c.Store,
		mergePolicyFromConfig(cfg.CartMergePolicy),
	)

	return c, nil
}

func (c *Container) buildStore(ctx context.Context, clientOpts []option.ClientOption) (cartdom.Store, error) {
	driver := strings.ToLower(strings.TrimSpace(c.Config.CartStoreDriver))

	switch driver {
	case "", "remote":
		baseURL := strings.TrimSpace(c.Config.CartRemoteBaseURL)
		if baseURL == "" {
			return nil, errors.New("di: CART_REMOTE_BASE_URL is required for the remote cart store")
		}
		log.Printf("[di] cart store = remote baseURL=%s", baseURL)
		return httpout.NewCartStoreClient(baseURL), nil

	case "firestore":
		prj := strings.TrimSpace(c.Config.ProjectID)
		if prj == "" {
			return nil, errors.New("di: FIRESTORE_PROJECT_ID is required for the firestore cart store")
		}
		fsClient, err := firestore.NewClient(ctx, prj, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("di: firestore.NewClient failed (project=%s): %w", prj, err)
		}
		c.Firestore = fsClient
		log.Printf("[di] cart store = firestore project=%s", prj)
		return fsout.NewCartStoreFS(fsClient), nil

	case "postgres":
		dsn, err := c.resolveDSN(ctx, clientOpts)
		if err != nil {
			return nil, err
		}
		dbConn, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: sql.Open failed: %w", err)
		}
		if err := dbConn.PingContext(ctx); err != nil {
			_ = dbConn.Close()
			return nil, fmt.Errorf("di: postgres ping failed: %w", err)
		}
		c.DB = dbConn
		log.Printf("[di] cart store = postgres")
		return dbout.NewCartStorePG(dbConn), nil

	default:
		return nil, fmt.Errorf("di: unknown CART_STORE_DRIVER %q", driver)
	}
}

// resolveDSN returns the Postgres DSN, preferring Secret Manager when
// CART_DB_DSN_SECRET is set. The env var may hold either a bare secret id
// (resolved under the configured project, version latest) or a full
// projects/.../secrets/.../versions/... resource name.
func (c *Container) resolveDSN(ctx context.Context, clientOpts []option.ClientOption) (string, error) {
	secretRef := strings.TrimSpace(c.Config.CartDBDSNSecret)
	if secretRef == "" {
		dsn := strings.TrimSpace(c.Config.CartDBDSN)
		if dsn == "" {
			return "", errors.New("di: CART_DB_DSN or CART_DB_DSN_SECRET is required for the postgres cart store")
		}
		return dsn, nil
	}

	sm, err := secretmanager.NewClient(ctx, clientOpts...)
	if err != nil {
		return "", fmt.Errorf("di: secretmanager.NewClient failed: %w", err)
	}
	defer sm.Close()

	name := secretRef
	if !strings.Contains(secretRef, "/") {
		prj := strings.TrimSpace(c.Config.ProjectID)
		if prj == "" {
			return "", errors.New("di: project id is required to resolve a bare secret id")
		}
		name = "projects/" + prj + "/secrets/" + secretRef + "/versions/latest"
	}

	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("di: AccessSecretVersion failed (%s): %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("di: empty secret payload (%s)", name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

func mergePolicyFromConfig(v string) cartdom.MergePolicy {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "replace":
		return cartdom.MergeReplace
	default:
		return cartdom.MergeAccumulate
	}
}

// BuildRouter assembles the HTTP surface on top of the container.
func (c *Container) BuildRouter() http.Handler {
	return httpin.NewRouter(httpin.RouterDeps{
		CartHandler:   handler.NewCartHandler(c.Sessions),
		Auth:          &middleware.SessionMiddleware{FirebaseAuth: c.FirebaseAuth},
		AllowedOrigin: c.Config.AllowedOrigin,
	})
}

// Close releases held clients. Safe to call on a partially built container.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Firestore != nil {
		_ = c.Firestore.Close()
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
