package config

import (
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"PageLens/types"
)

// unset marks a range bound or segment number that was not given
const unset = -1

var ErrUsage = errors.New("invalid usage")

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string
	FileLogName string // empty logs to stderr only
	MaxBackups  int
	MaxAge      int // days
	MaxSize     int // megabytes
	Compress    bool
}

type Config struct {
	Path          string
	Start         int // unset: from block 0
	End           int // unset: Start only, or to end of file
	Checksums     bool
	SkipLeaf      bool
	BlockSize     int // 0: detect from block 0
	SegmentSize   int // bytes
	SegmentNumber int // unset: from the file name
	ServeAddr     string
	CacheBytes    int64
	Logger        Logger
	Options       []string // command-line options as given, echoed in the document header
}

// Load reads an optional .env file, then PAGELENS_* environment variables,
// then the command line; later sources win. args excludes the program name.
func Load(args []string, stderr io.Writer) (Config, error) {
	godotenv.Load(".env")

	cfg := Config{
		Start:         unset,
		End:           unset,
		Checksums:     envBool("PAGELENS_CHECKSUMS", false),
		SkipLeaf:      envBool("PAGELENS_SKIP_LEAF", false),
		BlockSize:     envInt("PAGELENS_BLOCK_SIZE", 0),
		SegmentSize:   envInt("PAGELENS_SEGMENT_SIZE", types.DefaultSegmentSize),
		SegmentNumber: envInt("PAGELENS_SEGMENT_NUMBER", unset),
		ServeAddr:     os.Getenv("PAGELENS_SERVE"),
		CacheBytes:    int64(envInt("PAGELENS_CACHE_BYTES", 64<<20)),
		Logger: Logger{
			LogLevel:    envString("PAGELENS_LOG_LEVEL", "info"),
			FileLogName: os.Getenv("PAGELENS_LOG_FILE"),
			MaxBackups:  envInt("PAGELENS_LOG_MAX_BACKUPS", 3),
			MaxAge:      envInt("PAGELENS_LOG_MAX_AGE", 28),
			MaxSize:     envInt("PAGELENS_LOG_MAX_SIZE", 100),
			Compress:    envBool("PAGELENS_LOG_COMPRESS", false),
		},
	}

	fs := flag.NewFlagSet("pagelens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		io.WriteString(stderr, "Usage: pagelens [options] <file>\n\n")
		fs.PrintDefaults()
	}
	fs.IntVar(&cfg.Start, "start", cfg.Start, "first block to format")
	fs.IntVar(&cfg.End, "end", cfg.End, "last block to format (inclusive); defaults to -start alone")
	fs.BoolVar(&cfg.Checksums, "k", cfg.Checksums, "verify block checksums")
	fs.BoolVar(&cfg.SkipLeaf, "l", cfg.SkipLeaf, "summarize non-root B-tree leaf pages in one tag")
	fs.IntVar(&cfg.BlockSize, "b", cfg.BlockSize, "force block size in bytes instead of reading it from block 0")
	fs.IntVar(&cfg.SegmentSize, "s", cfg.SegmentSize, "force segment size in bytes")
	fs.IntVar(&cfg.SegmentNumber, "n", cfg.SegmentNumber, "force segment number instead of the file name suffix")
	fs.StringVar(&cfg.ServeAddr, "serve", cfg.ServeAddr, "serve tags and jump lists over HTTP on this address")
	fs.Int64Var(&cfg.CacheBytes, "cache", cfg.CacheBytes, "block cache size in bytes (server and jump list)")
	fs.StringVar(&cfg.Logger.LogLevel, "log-level", cfg.Logger.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.Logger.FileLogName, "log-file", cfg.Logger.FileLogName, "also write logs to this rotated file")

	if err := fs.Parse(args); err != nil {
		return cfg, errors.Wrap(ErrUsage, err.Error())
	}
	if fs.NArg() != 1 {
		return cfg, errors.Wrapf(ErrUsage, "expected exactly one file, got %d", fs.NArg())
	}
	cfg.Path = fs.Arg(0)
	cfg.Options = args[:len(args)-fs.NArg()]

	return cfg, cfg.Validate()
}

// Validate rejects option combinations before any block is read.
func (c Config) Validate() error {
	if c.Start < unset || c.End < unset {
		return errors.Wrap(ErrUsage, "block numbers must not be negative")
	}
	if c.Start != unset && c.End != unset && c.End < c.Start {
		return errors.Wrapf(ErrUsage, "end block %d precedes start block %d", c.End, c.Start)
	}
	if c.BlockSize != 0 && !validBlockSize(c.BlockSize) {
		return errors.Wrapf(ErrUsage, "block size %d is not a power of two between 1024 and 32768", c.BlockSize)
	}
	if c.SegmentSize <= 0 {
		return errors.Wrapf(ErrUsage, "segment size %d", c.SegmentSize)
	}
	if c.BlockSize != 0 && c.SegmentSize%c.BlockSize != 0 {
		return errors.Wrapf(ErrUsage, "segment size %d is not a multiple of block size %d", c.SegmentSize, c.BlockSize)
	}
	if c.SegmentNumber < unset {
		return errors.Wrapf(ErrUsage, "segment number %d", c.SegmentNumber)
	}
	if c.CacheBytes < 0 {
		return errors.Wrapf(ErrUsage, "cache size %d", c.CacheBytes)
	}

	info, err := os.Stat(c.Path)
	if err != nil {
		return errors.Wrap(err, "unreadable file")
	}
	if info.IsDir() {
		return errors.Wrapf(ErrUsage, "%s is a directory", c.Path)
	}
	return nil
}

func validBlockSize(n int) bool {
	return n >= 1024 && n <= 32768 && n&(n-1) == 0
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return def
}
