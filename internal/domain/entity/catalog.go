package entity

// Catalog는 전체 영화 컬렉션을 담는 단일 카탈로그 문서입니다.
// 영화 배열과 함께 다음에 할당할 ID 카운터, 조건부 갱신용 리비전을 보유합니다.
type Catalog struct {
	id       string
	movies   []Movie
	nextID   int64
	revision int64
}

// NewCatalog는 비어있는 카탈로그를 생성합니다
func NewCatalog() *Catalog {
	return &Catalog{
		movies:   []Movie{},
		nextID:   0,
		revision: 0,
	}
}

// ReconstructCatalog는 저장된 데이터로부터 카탈로그를 재구성합니다 (persistence layer용).
// next_id 필드가 없던 문서는 현재 살아있는 최대 ID+1로 카운터를 보정합니다.
func ReconstructCatalog(id string, movies []Movie, nextID, revision int64) *Catalog {
	if movies == nil {
		movies = []Movie{}
	}

	// ID 카운터는 절대 뒤로 가지 않습니다. 삭제된 ID는 재사용하지 않습니다.
	for i := range movies {
		if movies[i].ID >= nextID {
			nextID = movies[i].ID + 1
		}
	}

	return &Catalog{
		id:       id,
		movies:   movies,
		nextID:   nextID,
		revision: revision,
	}
}

// ID는 카탈로그 문서의 저장소 식별자를 반환합니다
func (c *Catalog) ID() string {
	return c.id
}

// SetID는 문서 식별자를 설정합니다 (persistence layer에서만 사용)
func (c *Catalog) SetID(id string) {
	c.id = id
}

// Movies는 영화 목록을 삽입 순서대로 반환합니다
func (c *Catalog) Movies() []Movie {
	// 방어적 복사
	result := make([]Movie, len(c.movies))
	copy(result, c.movies)
	return result
}

// Len은 영화 개수를 반환합니다
func (c *Catalog) Len() int {
	return len(c.movies)
}

// NextID는 다음 생성 시 할당될 ID를 반환합니다
func (c *Catalog) NextID() int64 {
	return c.nextID
}

// Revision은 조건부 갱신에 사용하는 문서 리비전을 반환합니다
func (c *Catalog) Revision() int64 {
	return c.revision
}

// CommitRevision은 조건부 갱신이 성공한 뒤 리비전을 증가시킵니다
// (persistence layer에서만 사용)
func (c *Catalog) CommitRevision() {
	c.revision++
}

// Append는 영화에 다음 ID를 할당하고 배열 끝에 추가합니다
func (c *Catalog) Append(m Movie) Movie {
	m.ID = c.nextID
	c.nextID++
	c.movies = append(c.movies, m)
	return m
}

// Replace는 주어진 ID의 영화 내용을 통째로 교체합니다.
// 교체 레코드의 ID 필드는 항상 대상 ID로 강제됩니다 (식별자 불변).
// 대상이 없으면 false를 반환하고 아무것도 변경하지 않습니다.
func (c *Catalog) Replace(id int64, m Movie) (Movie, bool) {
	for i := range c.movies {
		if c.movies[i].ID == id {
			m.ID = id
			c.movies[i] = m
			return m, true
		}
	}
	return Movie{}, false
}

// Remove는 주어진 ID의 영화를 제거합니다.
// 대상이 없으면 false를 반환합니다 (삭제는 멱등).
func (c *Catalog) Remove(id int64) bool {
	for i := range c.movies {
		if c.movies[i].ID == id {
			c.movies = append(c.movies[:i], c.movies[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID는 주어진 ID의 영화를 반환합니다
func (c *Catalog) FindByID(id int64) (Movie, bool) {
	for i := range c.movies {
		if c.movies[i].ID == id {
			return c.movies[i], true
		}
	}
	return Movie{}, false
}
