// Package errtrack cuenta ocurrencias de errores repetidos por huella (fingerprint)
// dentro de una ventana de tiempo, para no inundar el log con la misma falla.
//
// El Tracker tiene ciclo de vida explícito: New arranca la limpieza de expirados y
// Close la detiene. No hay estado global del paquete.
package errtrack

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Tracker contador acotado y seguro para concurrencia. La ventana de una huella empieza
// en su primera ocurrencia y no se extiende con las repeticiones.
type Tracker struct {
	cache *ttlcache.Cache[string, *atomic.Int64]
	done  chan struct{}
	once  sync.Once
}

// New crea el tracker. Al llegar a maxEntries se expulsa la huella menos reciente.
func New(window time.Duration, maxEntries int) *Tracker {
	if window <= 0 {
		window = 5 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	t := &Tracker{
		cache: ttlcache.New[string, *atomic.Int64](
			ttlcache.WithTTL[string, *atomic.Int64](window),
			ttlcache.WithCapacity[string, *atomic.Int64](uint64(maxEntries)),
			ttlcache.WithDisableTouchOnHit[string, *atomic.Int64](),
		),
		done: make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		t.cache.Start()
	}()
	return t
}

// Hit registra una ocurrencia y devuelve cuántas van en la ventana actual (1 = primera).
func (t *Tracker) Hit(fingerprint string) int {
	item, _ := t.cache.GetOrSet(fingerprint, new(atomic.Int64))
	return int(item.Value().Add(1))
}

// Count devuelve el conteo vigente de una huella (0 si no existe o expiró).
func (t *Tracker) Count(fingerprint string) int {
	item := t.cache.Get(fingerprint)
	if item == nil || item.IsExpired() {
		return 0
	}
	return int(item.Value().Load())
}

// Len número de huellas almacenadas (incluye expiradas aún no limpiadas).
func (t *Tracker) Len() int {
	return t.cache.Len()
}

// Close detiene la limpieza de expirados. Es seguro llamarlo varias veces.
func (t *Tracker) Close() {
	t.once.Do(func() {
		t.cache.Stop()
		<-t.done
	})
}
