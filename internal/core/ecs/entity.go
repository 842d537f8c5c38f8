package ecs

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale
// references — used as the backing allocator for item instance ids so a
// destroyed weapon's id can never be handed to a new item while something
// still holds the old reference.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// Pool manages entity allocation with generational indices and a free list.
type Pool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewPool() *Pool {
	return &Pool{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

func (p *Pool) Create() EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return NewEntityID(idx, p.generations[idx])
}

func (p *Pool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Reserve marks an externally-supplied id (e.g. restored from persistence)
// as allocated, growing the generation table as needed so a later Create
// never reissues it. Used once per id during boot load, before any fresh
// Create calls for the same store.
func (p *Pool) Reserve(id EntityID) {
	idx := id.Index()
	for uint32(len(p.generations)) <= idx {
		p.generations = append(p.generations, 0)
	}
	p.generations[idx] = id.Generation()
	if idx >= p.nextIndex {
		p.nextIndex = idx + 1
	}
}

func (p *Pool) Destroy(id EntityID) {
	idx := id.Index()
	if idx >= p.nextIndex {
		return
	}
	if p.generations[idx] != id.Generation() {
		return // already destroyed (stale reference)
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}
