package ranking

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"galmaetgil/internal/domain"
)

// Cache memoizes leaderboards per scope, period and journal version.
// A new completion bumps the version, so stale boards are simply never hit
// again. The TTL bounds how long a windowed board can lag behind the clock.
type Cache struct {
	courses *expirable.LRU[string, CourseRanking]
	global  *expirable.LRU[string, GlobalRanking]
}

func NewCache(size int, ttl time.Duration) *Cache {
	return &Cache{
		courses: expirable.NewLRU[string, CourseRanking](size, nil, ttl),
		global:  expirable.NewLRU[string, GlobalRanking](size, nil, ttl),
	}
}

func courseKey(id domain.CourseID, p Period, version uint64) string {
	return fmt.Sprintf("course:%d:%s:%d", id, p, version)
}

func globalKey(p Period, version uint64) string {
	return fmt.Sprintf("global:%s:%d", p, version)
}

func (c *Cache) Course(id domain.CourseID, p Period, version uint64) (CourseRanking, bool) {
	return c.courses.Get(courseKey(id, p, version))
}

func (c *Cache) SetCourse(r CourseRanking, version uint64) {
	c.courses.Add(courseKey(r.CourseID, r.Period, version), r)
}

func (c *Cache) Global(p Period, version uint64) (GlobalRanking, bool) {
	return c.global.Get(globalKey(p, version))
}

func (c *Cache) SetGlobal(r GlobalRanking, version uint64) {
	c.global.Add(globalKey(r.Period, version), r)
}

// Len is the number of cached boards across both scopes.
func (c *Cache) Len() int {
	return c.courses.Len() + c.global.Len()
}
