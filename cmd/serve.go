package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/ctransposer/constants"
	"github.com/jsphweid/ctransposer/db"
	"github.com/jsphweid/ctransposer/file"
	"github.com/jsphweid/ctransposer/logging"
	"github.com/jsphweid/ctransposer/model"
	"github.com/jsphweid/ctransposer/song"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveRecord bool

	// reportStore is set when serving with --record.
	reportStore db.Store
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetListenAddr(), "address to listen on")
	serveCmd.Flags().BoolVar(&serveRecord, "record", false, "save a difficulty report for every transposition")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves transposition over HTTP",
	Long: `Serves POST /transpose, POST /keys and a /live websocket that transposes
the latest text it was sent once typing settles.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveRecord {
			store, err := db.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()
			reportStore = store
		}
		return serve(cmd.Context(), serveAddr)
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/transpose", HandleTranspose).Methods("POST")
	router.HandleFunc("/keys", HandleKeys).Methods("POST")
	router.HandleFunc("/live", HandleLive).Methods("GET")

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return c.Handler(logging.CombinedMiddleware(router))
}

func serve(ctx context.Context, addr string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error("shutdown failed", "error", err)
		}
	}()

	logging.Info("listening", "addr", addr, "record", reportStore != nil)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, model.ErrorResponse{Error: detail})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Could not read request body: "+err.Error())
		return false
	}
	return true
}

func HandleTranspose(w http.ResponseWriter, r *http.Request) {
	var input model.TransposeRequest
	if !decodeBody(w, r, &input) {
		return
	}
	if input.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	res, err := runTranspose(r.Context(), reportStore, input)
	if err != nil {
		logging.LoggerFromContext(r.Context()).Error("could not save report", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save report")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleKeys(w http.ResponseWriter, r *http.Request) {
	var input model.KeysRequest
	if !decodeBody(w, r, &input) {
		return
	}

	idx := song.ExtractChords(file.SplitLines(input.Text))
	if len(idx) == 0 {
		writeError(w, http.StatusUnprocessableEntity, song.ErrNoChords.Error())
		return
	}
	scores := song.RankKeys(idx)
	writeJSON(w, http.StatusOK, model.KeysResponse{
		Easiest: song.EasiestKey(scores),
		Keys:    scores,
	})
}
