package dashboard

import (
	"sync"
	"time"
)

// RegionID identifies a display region of the dashboard page.
type RegionID string

// Region IDs. They match the element IDs the web page renders.
const (
	PlayersRegion       RegionID = "players-container"
	AdminsRegion        RegionID = "admins-container"
	ServerInfoRegion    RegionID = "server-info"
	CommandResultRegion RegionID = "rcon-result"
)

// Regions lists every region in page order.
var Regions = []RegionID{PlayersRegion, AdminsRegion, ServerInfoRegion, CommandResultRegion}

// Region is a display area whose whole content is replaced on each write.
type Region interface {
	Replace(content string)
}

// Snapshot is a consistent copy of the page.
type Snapshot struct {
	Regions   map[RegionID]string
	Version   uint64
	UpdatedAt time.Time
}

// Content returns the content of a region, empty when never written.
func (s Snapshot) Content(id RegionID) string {
	return s.Regions[id]
}

// Page holds the current content of every region. It is safe for
// concurrent use; each writer owns one region.
type Page struct {
	mu          sync.RWMutex
	regions     map[RegionID]string
	version     uint64
	updatedAt   time.Time
	subscribers map[chan struct{}]struct{}
}

// NewPage creates an empty page.
func NewPage() *Page {
	return &Page{
		regions:     make(map[RegionID]string, len(Regions)),
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Region returns a handle that writes into the region with the given ID.
func (p *Page) Region(id RegionID) Region {
	return pageRegion{page: p, id: id}
}

// Content returns the current content of a region.
func (p *Page) Content(id RegionID) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.regions[id]
}

// Snapshot returns a copy of all regions.
func (p *Page) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	regions := make(map[RegionID]string, len(p.regions))
	for id, content := range p.regions {
		regions[id] = content
	}

	return Snapshot{
		Regions:   regions,
		Version:   p.version,
		UpdatedAt: p.updatedAt,
	}
}

// Subscribe returns a channel that receives a value after page changes.
// Notifications coalesce: a slow reader sees one pending signal, not one
// per write. The returned func unsubscribes and closes the channel.
func (p *Page) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	p.mu.Lock()
	p.subscribers[ch] = struct{}{}
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subscribers, ch)
			p.mu.Unlock()
			close(ch)
		})
	}
}

func (p *Page) replace(id RegionID, content string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.regions[id] = content
	p.version++
	p.updatedAt = time.Now()

	for ch := range p.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

type pageRegion struct {
	page *Page
	id   RegionID
}

func (r pageRegion) Replace(content string) {
	r.page.replace(r.id, content)
}
