package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"PageLens/annotation"
	walker "PageLens/block_walker"
	jumplist "PageLens/jump_list"
	decoder "PageLens/page_decoder"
	diskmanager "PageLens/storage_engine/disk_manager"
)

// Trailers set after the document has been streamed.
const (
	trailerError       = "X-Pagelens-Error"
	trailerDiagnostics = "X-Pagelens-Diagnostics"
	trailerTags        = "X-Pagelens-Tags"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// tags streams the annotation document for ?start=&end= (both optional,
// same meaning as the command line range). ?l and ?k override the
// configured leaf skipping and checksum verification.
func (s *Server) tags(w http.ResponseWriter, r *http.Request) {
	opts := walker.FromConfig(s.cfg)
	query := r.URL.Query()

	var err error
	if opts.Start, err = blockParam(query.Get("start"), opts.Start); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if opts.End, err = blockParam(query.Get("end"), opts.End); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if opts.Start != walker.NoBlock && opts.End != walker.NoBlock && opts.End < opts.Start {
		writeError(w, http.StatusBadRequest, errors.Errorf("end block %d precedes start block %d", opts.End, opts.Start))
		return
	}
	if opts.SkipLeaf, err = boolParam(query.Get("l"), opts.SkipLeaf); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if opts.VerifyChecksums, err = boolParam(query.Get("k"), opts.VerifyChecksums); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	runID := uuid.NewString()
	log := s.log.With(zap.String("run_id", runID))

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("X-Run-Id", runID)
	w.Header().Set("Trailer", trailerError+", "+trailerDiagnostics+", "+trailerTags)

	// A walk closes the file it opened, so it gets a disk manager of its own.
	dm := diskmanager.NewDiskManager()
	defer dm.CloseAll()

	out := annotation.NewXMLWriter(w)
	run := walker.New(dm, out, decoder.NewDiagnostics(log), log, opts)
	res, err := run.Run(r.Context(), annotation.DocHeader{
		Created: time.Now(),
		Options: []string{r.URL.RawQuery},
		Path:    s.cfg.Path,
		RunID:   runID,
	})

	w.Header().Set(trailerDiagnostics, strconv.Itoa(res.Diagnostics))
	w.Header().Set(trailerTags, strconv.FormatUint(uint64(res.Tags), 10))
	if err != nil {
		log.Error("walk aborted", zap.Error(err))
		w.Header().Set(trailerError, err.Error())
	}
}

// jump returns the jump list of the configured file as JSON.
func (s *Server) jump(w http.ResponseWriter, r *http.Request) {
	fileID, err := s.dm.OpenFile(s.cfg.Path, s.cfg.BlockSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	jl, err := jumplist.Build(s.pool, fileID)
	switch {
	case errors.Is(err, jumplist.ErrNotBTree), errors.Is(err, jumplist.ErrBadRoot):
		writeError(w, http.StatusUnprocessableEntity, err)
	case err != nil:
		s.log.Error("jump list", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, jl)
	}
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pool.GetStats())
}

func blockParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.Errorf("invalid block number %q", v)
	}
	return n, nil
}

func boolParam(v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Errorf("invalid boolean %q", v)
	}
	return b, nil
}
