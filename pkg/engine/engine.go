package engine

import (
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/plugrig/plugrig/pkg/config"
	"github.com/plugrig/plugrig/pkg/pipeline"
	"github.com/plugrig/plugrig/pkg/plugin"
)

// Source locates and reads a raw configuration document. The default reads
// from the file system; hosts can substitute network fetches or embedded
// literals. A missing document must surface an error wrapping fs.ErrNotExist
// so it can be distinguished from a malformed one.
type Source func(path string) ([]byte, error)

// DefaultRegistryCacheSize bounds the registry cache unless
// WithRegistryCacheSize overrides it.
const DefaultRegistryCacheSize = 8

// Engine resolves configuration documents into executable pipelines. Safe for
// concurrent use; see the package documentation for the caching and
// stable-snapshot semantics.
type Engine struct {
	loader        plugin.Loader
	source        Source
	envVar        string
	defaultModule string
	cacheSize     int

	registries *lru.Cache[string, *plugin.Registry]
	regFlight  singleflight.Group

	mu         sync.RWMutex
	pipelines  map[pipelineKey]*pipeline.Pipeline
	pipeFlight singleflight.Group
}

// New creates an Engine. Without options it loads modules from
// plugin.DefaultTable, reads documents from the file system and honours the
// config.EnvModule override.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		loader:        plugin.DefaultTable,
		source:        os.ReadFile,
		envVar:        config.EnvModule,
		defaultModule: config.DefaultModule,
		cacheSize:     DefaultRegistryCacheSize,
		pipelines:     make(map[pipelineKey]*pipeline.Pipeline),
	}
	for _, opt := range opts {
		opt(e)
	}

	registries, err := lru.New[string, *plugin.Registry](e.cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create registry cache")
	}
	e.registries = registries

	return e, nil
}

// Init resolves the configuration document at path into an executable
// pipeline: read, validate, resolve the module, load its registry
// (cache-checked) and build the pipeline (cache-checked). Failures are one of
// *config.Error, *plugin.Error or *pipeline.Error / *pipeline.StepError,
// propagated from the failing phase without further wrapping.
func (e *Engine) Init(path string) (*pipeline.Pipeline, error) {
	data, err := e.source(path)
	if err != nil {
		reason := "cannot read document " + strconv.Quote(path)
		if errors.Is(err, fs.ErrNotExist) {
			reason = "document " + strconv.Quote(path) + " not found"
		}

		return nil, &config.Error{Reason: reason, Err: err}
	}

	cfg, err := config.Parse(data)
	if err != nil {
		return nil, err
	}

	module := config.ResolveModuleVar(cfg, e.envVar, e.defaultModule)

	if _, err := e.Registry(module); err != nil {
		return nil, err
	}

	return e.Pipeline(module, cfg.Steps)
}

// Registry returns the validated registry for a module, loading and caching
// it on first use. Concurrent misses for the same module converge on one
// load; failures are never cached, so a later call re-attempts the load.
func (e *Engine) Registry(module string) (*plugin.Registry, error) {
	if reg, ok := e.registries.Get(module); ok {
		return reg, nil
	}

	v, err, _ := e.regFlight.Do(module, func() (any, error) {
		if reg, ok := e.registries.Get(module); ok {
			return reg, nil
		}

		reg, err := plugin.LoadRegistry(e.loader, module)
		if err != nil {
			return nil, err
		}
		e.registries.Add(module, reg)

		return reg, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*plugin.Registry), nil
}

// Pipeline returns the pipeline for (module, steps), building and caching it
// on first use. A hit returns the cached pipeline unchanged, without
// re-validating against a possibly-updated registry; different step orderings
// and different modules are distinct keys.
func (e *Engine) Pipeline(module string, steps []string) (*pipeline.Pipeline, error) {
	key := newPipelineKey(module, steps)

	e.mu.RLock()
	built, ok := e.pipelines[key]
	e.mu.RUnlock()
	if ok {
		return built, nil
	}

	v, err, _ := e.pipeFlight.Do(key.flight(), func() (any, error) {
		e.mu.RLock()
		built, ok := e.pipelines[key]
		e.mu.RUnlock()
		if ok {
			return built, nil
		}

		reg, err := e.Registry(module)
		if err != nil {
			return nil, err
		}

		built, err = pipeline.Build(reg, steps)
		if err != nil {
			return nil, err
		}

		e.mu.Lock()
		e.pipelines[key] = built
		e.mu.Unlock()

		return built, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*pipeline.Pipeline), nil
}

// InvalidateModule drops a module's registry from the cache so the next
// resolution reloads it. Pipelines already built against the old registry
// keep their bound callables (stable snapshot). Returns whether an entry was
// present.
func (e *Engine) InvalidateModule(module string) bool {
	return e.registries.Remove(module)
}

// pipelineKey identifies a built pipeline by module and the exact ordered
// step list.
type pipelineKey struct {
	module string
	steps  string
}

func newPipelineKey(module string, steps []string) pipelineKey {
	// Quoting keeps the key unambiguous for any step names.
	quoted := make([]string, len(steps))
	for i, step := range steps {
		quoted[i] = strconv.Quote(step)
	}

	return pipelineKey{module: module, steps: strings.Join(quoted, ",")}
}

func (k pipelineKey) flight() string {
	return strconv.Quote(k.module) + ":" + k.steps
}

func (e *Engine) registryCacheLen() int { return e.registries.Len() }

func (e *Engine) pipelineCacheLen() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.pipelines)
}
