// Package mockapi provides a standalone backend that serves the same
// component endpoints as the production API, backed by a synthetic
// random-walk market. It exists for demos and for end-to-end tests that
// need a real HTTP server.
package mockapi

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cbmo4ers/coinpulse/internal/api"
	"github.com/cbmo4ers/coinpulse/internal/logger"
	"github.com/cbmo4ers/coinpulse/internal/types"
)

// Version is the backend version reported by the liveness endpoint.
const Version = "3.0.0"

const defaultLimit = 20

// asset is one simulated market with its current state.
type asset struct {
	Symbol      string
	Price       float64
	Change3Min  float64
	Change1Min  float64
	Change1Hour float64
	Volume      float64
}

// Server is the mock backend.
type Server struct {
	mu sync.Mutex

	httpServer *http.Server
	listener   net.Listener

	rng    *rand.Rand
	assets []*asset
	logger *logger.Logger
}

// seedAssets are the simulated markets with their starting prices and
// daily volumes.
var seedAssets = []asset{
	{Symbol: "BTC-USD", Price: 67000, Volume: 28_000_000},
	{Symbol: "ETH-USD", Price: 3400, Volume: 15_000_000},
	{Symbol: "SOL-USD", Price: 140, Volume: 9_500_000},
	{Symbol: "XRP-USD", Price: 0.52, Volume: 4_200_000},
	{Symbol: "ADA-USD", Price: 0.45, Volume: 2_100_000},
	{Symbol: "AVAX-USD", Price: 35, Volume: 1_800_000},
	{Symbol: "DOGE-USD", Price: 0.12, Volume: 5_600_000},
	{Symbol: "DOT-USD", Price: 6.8, Volume: 950_000},
	{Symbol: "LINK-USD", Price: 14.5, Volume: 1_300_000},
	{Symbol: "MATIC-USD", Price: 0.71, Volume: 1_100_000},
	{Symbol: "ATOM-USD", Price: 8.9, Volume: 480_000},
	{Symbol: "LTC-USD", Price: 82, Volume: 720_000},
	{Symbol: "UNI-USD", Price: 9.4, Volume: 390_000},
	{Symbol: "PEPE-USD", Price: 0.0000112, Volume: 3_800_000},
	{Symbol: "SHIB-USD", Price: 0.0000241, Volume: 2_700_000},
	{Symbol: "XLM-USD", Price: 0.11, Volume: 310_000},
}

// NewServer creates a mock backend. A fixed seed makes the simulated
// market deterministic across runs.
func NewServer(seed int64, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}

	assets := make([]*asset, 0, len(seedAssets))

	for _, a := range seedAssets {
		copied := a
		assets = append(assets, &copied)
	}

	return &Server{
		rng:    rand.New(rand.NewSource(seed)),
		assets: assets,
		logger: log.Named("mockapi"),
	}
}

// Start starts the server on the given address. An empty address or
// ":0" picks a random available port.
func (s *Server) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.listener = listener

	router := mux.NewRouter()
	router.HandleFunc("/", s.handleLiveness).Methods("GET")
	router.HandleFunc(api.ComponentGainers3Min, s.rankedHandler("gainers-table", "3min", by3MinDesc)).Methods("GET")
	router.HandleFunc(api.ComponentLosers3Min, s.rankedHandler("losers-table", "3min", by3MinAsc)).Methods("GET")
	router.HandleFunc(api.ComponentGainers1Min, s.rankedHandler("gainers-table-1min", "1min", by1MinDesc)).Methods("GET")
	router.HandleFunc(api.ComponentTopBanner, s.rankedHandler("top-banner-scroll", "1h", by1HourDesc)).Methods("GET")
	router.HandleFunc(api.ComponentBottomBanner, s.rankedHandler("bottom-banner-scroll", "1h", byVolumeDesc)).Methods("GET")

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != http.ErrServerClosed {
			s.logger.Error("mock API server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// Address returns the address the server is listening on.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// BaseURL returns the base URL for the server.
func (s *Server) BaseURL() string {
	return "http://" + s.Address()
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, types.ServiceInfo{
		Service: "coinpulse-mock-api",
		Status:  "running",
		Version: Version,
	})
}

// rankedHandler serves one component endpoint: step the market, sort a
// snapshot with the component's ordering, and wrap it in the envelope.
func (s *Server) rankedHandler(component, timeFrame string, less func(a, b *asset) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				http.Error(w, "invalid limit parameter", http.StatusBadRequest)

				return
			}

			limit = parsed
		}

		snapshot := s.step()

		sort.Slice(snapshot, func(i, j int) bool {
			return less(snapshot[i], snapshot[j])
		})

		if len(snapshot) > limit {
			snapshot = snapshot[:limit]
		}

		ticks := make([]types.MarketTick, 0, len(snapshot))
		for i, a := range snapshot {
			ticks = append(ticks, types.MarketTick{
				Rank:         i + 1,
				Symbol:       a.Symbol,
				CurrentPrice: a.Price,
				Change3Min:   a.Change3Min,
				Change1Min:   a.Change1Min,
				Change1Hour:  a.Change1Hour,
				Volume24Hour: a.Volume,
			})
		}

		writeJSON(w, types.ComponentEnvelope{
			Component:   component,
			Data:        ticks,
			Count:       len(ticks),
			TimeFrame:   timeFrame,
			LastUpdated: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// step advances the random walk one tick and returns a snapshot of the
// market that handlers can sort without holding the lock.
func (s *Server) step() []*asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]*asset, 0, len(s.assets))

	for _, a := range s.assets {
		move := (s.rng.Float64() - 0.5) * 2 // -1..1

		a.Change1Min = move * 3
		a.Change3Min += a.Change1Min
		if a.Change3Min > 12 || a.Change3Min < -12 {
			a.Change3Min = a.Change1Min
		}

		a.Change1Hour += a.Change1Min / 4
		a.Price *= 1 + a.Change1Min/100
		a.Volume *= 1 + (s.rng.Float64()-0.5)*0.02

		copied := *a
		snapshot = append(snapshot, &copied)
	}

	return snapshot
}

func by3MinDesc(a, b *asset) bool { return a.Change3Min > b.Change3Min }

func by3MinAsc(a, b *asset) bool { return a.Change3Min < b.Change3Min }

func by1MinDesc(a, b *asset) bool { return a.Change1Min > b.Change1Min }

func by1HourDesc(a, b *asset) bool { return a.Change1Hour > b.Change1Hour }

func byVolumeDesc(a, b *asset) bool { return a.Volume > b.Volume }

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
