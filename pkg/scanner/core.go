package scanner

import (
	"sync"

	"github.com/bytesleuth/sleuth/pkg/matcher"
	"github.com/bytesleuth/sleuth/pkg/signature"
	"github.com/bytesleuth/sleuth/pkg/store"
	"github.com/bytesleuth/sleuth/pkg/types"
)

var (
	// cachedBuiltinSet holds the builtin signature set loaded once per process
	cachedBuiltinSet *types.Set
	cachedSetErr     error
	cacheOnce        sync.Once
)

// loadBuiltinSetCached loads the builtin signature set once and caches it.
// The set is immutable, so sharing one instance process-wide is safe.
func loadBuiltinSetCached() (*types.Set, error) {
	cacheOnce.Do(func() {
		loader := signature.NewLoader()
		cachedBuiltinSet, cachedSetErr = loader.LoadBuiltinSet()
	})
	return cachedBuiltinSet, cachedSetErr
}

// Core wraps the matcher and store for classification operations.
type Core struct {
	matcher *matcher.Matcher
	store   store.Store
	logger  DebugLogger
}

// NewCore creates a new Core with the given signature source.
// sigSource can be:
// - "" or "builtin" to load builtin signatures (cached)
// - a path to a custom signature YAML file
func NewCore(sigSource string, logger DebugLogger) (*Core, error) {
	if logger == nil {
		logger = NoopLogger{}
	}

	logger.Log("NewCore starting...")

	var set *types.Set
	if sigSource == "" || sigSource == "builtin" {
		logger.Log("Loading builtin signatures (cached)...")
		var err error
		set, err = loadBuiltinSetCached()
		if err != nil {
			logger.Log("loadBuiltinSetCached failed: %v", err)
			return nil, err
		}
		logger.Log("Loaded %d builtin signatures", set.Len())
	} else {
		logger.Log("Loading signature file %s...", sigSource)
		sigs, err := signature.NewLoader().LoadSignatureFile(sigSource)
		if err != nil {
			logger.Log("LoadSignatureFile failed: %v", err)
			return nil, err
		}
		set, err = types.NewSet(sigs)
		if err != nil {
			logger.Log("NewSet failed: %v", err)
			return nil, err
		}
		logger.Log("Loaded %d custom signatures", set.Len())
	}

	logger.Log("Creating matcher with %d signatures...", set.Len())
	m, err := matcher.New(matcher.Config{Set: set})
	if err != nil {
		logger.Log("matcher.New failed: %v", err)
		return nil, err
	}

	logger.Log("Creating store...")
	s, err := store.New(store.Config{Path: ":memory:"})
	if err != nil {
		logger.Log("store.New failed: %v", err)
		return nil, err
	}

	logger.Log("NewCore complete")
	return &Core{
		matcher: m,
		store:   s,
		logger:  logger,
	}, nil
}

// Detect classifies a single content window.
func (c *Core) Detect(content []byte, source, fallback string) (*DetectResult, error) {
	result := c.matcher.Classify(content, fallback)
	id := types.ComputeFileID(content)

	c.store.AddFile(id, int64(len(content)))
	c.store.AddDetection(&types.Detection{
		FileID:   id,
		Path:     source,
		Size:     int64(len(content)),
		Fallback: fallback,
		Result:   result,
	})

	return &DetectResult{
		Source: source,
		FileID: id,
		Result: result,
	}, nil
}

// DetectBatch classifies multiple content items.
func (c *Core) DetectBatch(items []ContentItem) (*BatchDetectResult, error) {
	var results []DetectResult
	recognized := 0

	for _, item := range items {
		res, err := c.Detect(item.Content, item.Source, item.Fallback)
		if err != nil {
			// Skip items that fail to classify
			continue
		}

		results = append(results, *res)
		if res.Result.Matched {
			recognized++
		}
	}

	return &BatchDetectResult{
		Results:    results,
		Recognized: recognized,
	}, nil
}

// Detections returns all stored detections.
func (c *Core) Detections() ([]*types.Detection, error) {
	return c.store.GetAllDetections()
}

// SignatureCount returns the number of loaded signatures.
func (c *Core) SignatureCount() int {
	return c.matcher.SignatureCount()
}

// Close releases core resources.
func (c *Core) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// GetBuiltinSet returns the built-in signature set (cached).
func GetBuiltinSet() (*types.Set, error) {
	return loadBuiltinSetCached()
}
