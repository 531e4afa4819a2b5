package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/aticie/spy-bot/internal/domain"
)

// BeatmapCache: 비트맵 메타데이터용 TTL 기반 LRU 캐시입니다.
// 같은 비트맵에서 스코어가 반복 발생할 때 get_beatmaps 보조 조회를 절약한다.
type BeatmapCache struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	items      map[string]*list.Element
	order      *list.List
}

type beatmapEntry struct {
	key       string
	value     *domain.Beatmap
	expiresAt time.Time
}

// NewBeatmapCache: 비트맵 캐시를 생성합니다.
func NewBeatmapCache(maxEntries int, ttl time.Duration) *BeatmapCache {
	if maxEntries <= 0 || ttl <= 0 {
		return nil
	}
	return &BeatmapCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		items:      make(map[string]*list.Element, maxEntries),
		order:      list.New(),
	}
}

// Get: 캐시에서 비트맵을 조회합니다.
func (c *BeatmapCache) Get(beatmapID string) (*domain.Beatmap, bool) {
	if c == nil {
		return nil, false
	}

	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[beatmapID]
	if !ok {
		return nil, false
	}

	entry := elem.Value.(beatmapEntry)
	if !entry.expiresAt.After(now) {
		c.removeElement(elem)
		return nil, false
	}

	c.order.MoveToFront(elem)
	return entry.value, true
}

// Set: 캐시에 비트맵을 저장합니다.
func (c *BeatmapCache) Set(beatmapID string, beatmap *domain.Beatmap) {
	if c == nil {
		return
	}

	expiresAt := time.Now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[beatmapID]; ok {
		c.order.MoveToFront(elem)
		elem.Value = beatmapEntry{
			key:       beatmapID,
			value:     beatmap,
			expiresAt: expiresAt,
		}
		return
	}

	elem := c.order.PushFront(beatmapEntry{
		key:       beatmapID,
		value:     beatmap,
		expiresAt: expiresAt,
	})
	c.items[beatmapID] = elem

	for len(c.items) > c.maxEntries {
		back := c.order.Back()
		if back == nil {
			break
		}
		c.removeElement(back)
	}
}

func (c *BeatmapCache) removeElement(elem *list.Element) {
	entry := elem.Value.(beatmapEntry)
	delete(c.items, entry.key)
	c.order.Remove(elem)
}
