package server

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/application"
	"github.com/sdt-sys/sdt-go/crypto/hasher"
	"github.com/sdt-sys/sdt-go/merkletree"
	"github.com/sdt-sys/sdt-go/protocol"
	"github.com/sdt-sys/sdt-go/storage/kv"
	"github.com/sdt-sys/sdt-go/storage/kv/credentialkv"
	"github.com/sdt-sys/sdt-go/utils"
)

// A CredentialServer issues credentials and answers the credential
// operations over the network. Issued credentials are persisted by
// subject; a mutation always extends the stored chain.
type CredentialServer struct {
	*application.ServerBase
	db         kv.DB
	store      *credentialkv.Store
	opts       *protocol.Options
	metrics    *metrics
	metricsSrv *http.Server
	metricsURL string
}

// OpenStore opens the database described by conf.
func OpenStore(conf *StorageConfig) (kv.DB, *credentialkv.Store, error) {
	open, ok := utils.Backends[conf.Backend]
	if !ok {
		return nil, nil, errors.Errorf("unknown storage backend %q", conf.Backend)
	}
	db, err := open(conf.Path)
	if err != nil {
		return nil, nil, err
	}
	store, err := credentialkv.New(db, conf.CacheSize)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, store, nil
}

func builderOptions(conf *BuilderConfig) *protocol.Options {
	if conf == nil {
		return &protocol.Options{HashAlg: hasher.Default}
	}
	return &protocol.Options{
		HashAlg: hasher.HashAlg(conf.HashAlg),
		Workers: conf.Workers,
	}
}

// NewCredentialServer creates a new credential server from conf
// and opens its database.
func NewCredentialServer(conf *Config) (*CredentialServer, error) {
	// determine this server's request permissions
	perms := make(map[*application.ServerAddress]map[protocol.CommandKind]bool)
	for _, addr := range conf.Addresses {
		perms[&addr.ServerAddress] = map[protocol.CommandKind]bool{
			protocol.SelectionKind:    true,
			protocol.ProofKind:        true,
			protocol.VerificationKind: true,
			protocol.DisclosureKind:   true,
			application.FetchKind:     true,
			protocol.InceptionKind:    addr.AllowIssuance,
			protocol.MutationKind:     addr.AllowIssuance,
		}
	}

	db, store, err := OpenStore(conf.Storage)
	if err != nil {
		return nil, err
	}

	server := &CredentialServer{
		ServerBase: application.NewServerBase(&conf.CommonConfig, "Listen", perms),
		db:         db,
		store:      store,
		opts:       builderOptions(conf.Builder),
		metrics:    newMetrics(),
		metricsURL: conf.MetricsAddress,
	}
	return server, nil
}

// HandleRequests passes the command to the appropriate operation
// handler according to its kind and records the outcome in the
// server's metrics.
func (server *CredentialServer) HandleRequests(cmd *protocol.Command) *protocol.Result {
	start := time.Now()
	res := server.handle(cmd)
	server.metrics.observe(cmd.Kind, res, start)
	return res
}

func (server *CredentialServer) handle(cmd *protocol.Command) *protocol.Result {
	switch req := cmd.Payload.(type) {
	case *application.FetchRequest:
		return server.fetch(req.Subject)
	case *protocol.InceptionCommand:
		return server.incept(cmd, req)
	case *protocol.MutationCommand:
		if req.Credential != nil {
			return server.mutate(req)
		}
	}
	return protocol.ExecuteWith(cmd, server.opts)
}

func notFound(err error) *protocol.Result {
	return protocol.NewErrorResult(errors.Wrap(protocol.ErrMalformedCommand, err.Error()))
}

func (server *CredentialServer) fetch(subject string) *protocol.Result {
	c, err := server.store.Get(subject)
	if err != nil {
		if err == credentialkv.ErrCredentialNotFound {
			return notFound(err)
		}
		return protocol.NewErrorResult(err)
	}
	tip, err := server.store.Tip(subject)
	if err != nil {
		return protocol.NewErrorResult(err)
	}
	return &protocol.Result{Kind: application.FetchKind, Credential: c, Proof: tip}
}

func (server *CredentialServer) incept(cmd *protocol.Command, req *protocol.InceptionCommand) *protocol.Result {
	exists, err := server.store.Exists(req.Subject)
	if err != nil {
		return protocol.NewErrorResult(err)
	}
	if exists {
		return notFound(credentialkv.ErrSubjectExisted)
	}
	res := protocol.ExecuteWith(cmd, server.opts)
	if res.Failed() {
		return res
	}
	if err := server.store.Create(res.Credential); err != nil {
		return protocol.NewErrorResult(err)
	}
	server.metrics.credentials.Inc()
	server.Logger().Info("Credential issued", "subject", req.Subject)
	return res
}

// mutate extends the stored credential of the subject. The caller's
// credential only identifies the version being extended: its tip must
// match the stored one.
func (server *CredentialServer) mutate(req *protocol.MutationCommand) *protocol.Result {
	subject := req.Credential.Subject
	stored, err := server.store.Get(subject)
	if err != nil {
		if err == credentialkv.ErrCredentialNotFound {
			return notFound(err)
		}
		return protocol.NewErrorResult(err)
	}
	storedTip, err := server.store.Tip(subject)
	if err != nil {
		return protocol.NewErrorResult(err)
	}
	tip, err := req.Credential.Proof()
	if err != nil {
		return protocol.NewErrorResult(err)
	}
	if tip != storedTip {
		return protocol.NewErrorResult(&merkletree.VerificationError{
			Expected: storedTip,
			Actual:   tip,
			Position: req.Credential.Len() - 1,
		})
	}

	res := protocol.ExecuteWith(protocol.NewMutationCommand(stored, req.Claim), server.opts)
	if res.Failed() {
		return res
	}
	if err := server.store.Put(res.Credential); err != nil {
		return protocol.NewErrorResult(err)
	}
	server.Logger().Info("Credential mutated", "subject", subject,
		"version", res.Credential.Len())
	return res
}

// Run implements the main functionality of the credential server.
// It listens for all declared connections with corresponding
// permissions, serves the metrics if configured, and reloads the
// builder configuration on SIGUSR2.
func (server *CredentialServer) Run(addrs []*Address) {
	hasIssuancePerm := false
	for _, addr := range addrs {
		hasIssuancePerm = hasIssuancePerm || addr.AllowIssuance
		server.ListenAndHandle(&addr.ServerAddress, server.HandleRequests)
	}
	if !hasIssuancePerm {
		server.Logger().Warn("None of the addresses permit issuance")
	}

	if server.metricsURL != "" {
		server.metricsSrv = &http.Server{
			Addr:    server.metricsURL,
			Handler: server.metrics.handler(),
		}
		server.RunInBackground(func() {
			server.Logger().Info("Serving metrics", "address", server.metricsURL)
			if err := server.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				server.Logger().Error(err.Error())
			}
		})
	}

	server.RunInBackground(func() {
		server.HotReload(server.reloadBuilder)
	})
}

// reloadBuilder is called with the server locked.
func (server *CredentialServer) reloadBuilder() {
	path, encoding := server.ConfigInfo()
	conf := new(Config)
	if err := conf.Load(path, encoding); err != nil {
		// keep the current settings
		server.Logger().Error(err.Error())
		return
	}
	server.opts = builderOptions(conf.Builder)
	server.Logger().Info("Builder reloaded!",
		"hash_alg", hasher.HashAlg(conf.Builder.HashAlg).String(),
		"workers", conf.Builder.Workers)
}

// Shutdown stops serving, waits for running requests and closes
// the database.
func (server *CredentialServer) Shutdown() error {
	if server.metricsSrv != nil {
		server.metricsSrv.Close()
	}
	if err := server.ServerBase.Shutdown(); err != nil {
		return err
	}
	return server.db.Close()
}
