package cache

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// The cache is a package used for objects that are a pure function of a
// key and are expensive enough that we only want to build them once per
// process, for example the box index of a given board size.

type cache struct {
	sync.Mutex
	objects map[string]any
}

type LoadFunc func(key string) (any, error)

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache *cache

var createOnce sync.Once

func (c *cache) load(key string, loadFunc LoadFunc) error {
	log.Debug().Str("key", key).Msg("loading into cache")

	obj, err := loadFunc(key)
	if err != nil {
		return err
	}
	c.objects[key] = obj

	return nil
}

func (c *cache) get(key string, loadFunc LoadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		return obj, nil
	}
	if err := c.load(key, loadFunc); err != nil {
		return nil, err
	}
	return c.objects[key], nil
}

func CreateGlobalObjectCache() {
	GlobalObjectCache = &cache{objects: make(map[string]any)}
}

// Load returns the object stored under name, calling loadFunc to build it
// the first time. A failed load is not cached.
func Load(name string, loadFunc LoadFunc) (any, error) {
	createOnce.Do(func() {
		if GlobalObjectCache == nil {
			CreateGlobalObjectCache()
		}
	})
	return GlobalObjectCache.get(name, loadFunc)
}
