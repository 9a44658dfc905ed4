package game

// MatchGroup is one resolved cluster of same-type tiles to be removed
// together: a straight run of ≥3, or the union of an intersecting
// horizontal and vertical run (an L/T shape). Groups are recomputed fresh
// each resolution pass and never persisted.
type MatchGroup struct {
	Tiles []*Tile
	Union bool  // true for a merged L/T shape
	Pivot *Tile // intersection tile of a union group, nil otherwise
}

// Type returns the shared gem type of the group's tiles.
func (g *MatchGroup) Type() int {
	return g.Tiles[0].Type
}

// Middle returns the middle-index tile of a straight run, the cell that
// hosts a spawned special for 4- and 5-runs.
func (g *MatchGroup) Middle() *Tile {
	return g.Tiles[len(g.Tiles)/2]
}

// run is a maximal straight same-type sequence found during a scan pass.
type run struct {
	tiles    []*Tile
	consumed bool
}

// FindMatches scans the whole board for straight runs of ≥3 (all rows,
// then all columns) and merges intersecting horizontal+vertical runs into
// union groups. The scan is greedy: a found run is extended maximally and
// the scan skips past it, so a tile belongs to at most one run per
// orientation per pass.
//
// Pivot tie-break: when several tiles are shared between runs, the first
// tile encountered in scan order (horizontal runs first, left to right)
// with membership in both an unconsumed horizontal and vertical run
// becomes the union's pivot. Arbitrary but stable.
func FindMatches(b *Board) []MatchGroup {
	hRuns := scanRuns(b, true)
	vRuns := scanRuns(b, false)

	// Index vertical runs by member tile for intersection lookup.
	vByTile := make(map[*Tile]*run)
	for _, v := range vRuns {
		for _, t := range v.tiles {
			vByTile[t] = v
		}
	}

	var groups []MatchGroup
	for _, h := range hRuns {
		if h.consumed {
			continue
		}
		for _, t := range h.tiles {
			v, ok := vByTile[t]
			if !ok || v.consumed {
				continue
			}
			// Merge h and v into one union group pivoted on t.
			union := make([]*Tile, 0, len(h.tiles)+len(v.tiles)-1)
			union = append(union, h.tiles...)
			for _, vt := range v.tiles {
				if vt != t {
					union = append(union, vt)
				}
			}
			groups = append(groups, MatchGroup{Tiles: union, Union: true, Pivot: t})
			h.consumed = true
			v.consumed = true
			break
		}
	}
	for _, h := range hRuns {
		if !h.consumed {
			groups = append(groups, MatchGroup{Tiles: h.tiles})
		}
	}
	for _, v := range vRuns {
		if !v.consumed {
			groups = append(groups, MatchGroup{Tiles: v.tiles})
		}
	}
	return groups
}

// scanRuns collects maximal same-type runs of length ≥3 along one
// orientation, left-to-right / top-to-bottom.
func scanRuns(b *Board, horizontal bool) []*run {
	var runs []*run
	outer, inner := b.Rows(), b.Cols()
	if !horizontal {
		outer, inner = b.Cols(), b.Rows()
	}
	at := func(o, i int) *Tile {
		if horizontal {
			return b.At(o, i)
		}
		return b.At(i, o)
	}
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; {
			t := at(o, i)
			if t == nil {
				i++
				continue
			}
			j := i + 1
			for j < inner {
				n := at(o, j)
				if n == nil || n.Type != t.Type {
					break
				}
				j++
			}
			if j-i >= 3 {
				r := &run{tiles: make([]*Tile, 0, j-i)}
				for k := i; k < j; k++ {
					r.tiles = append(r.tiles, at(o, k))
				}
				runs = append(runs, r)
			}
			i = j
		}
	}
	return runs
}

// SpawnSpec describes a special tile to create after a group's removal
// commits.
type SpawnSpec struct {
	Row     int
	Col     int
	Type    int
	Special Special
}

// Resolution is the combined outcome of classifying every group found in
// one pass. Nothing is committed to the board until the caller applies it,
// so overlapping effects compose within a single resolution step.
type Resolution struct {
	Removed   []*Tile      // all group tiles, deduplicated
	Spawns    []SpawnSpec  // specials to create at cleared cells
	Triggered []Activation // existing specials uncovered inside groups
}

// BombsSpawned counts bomb spawns in the resolution.
func (r *Resolution) BombsSpawned() int {
	n := 0
	for _, s := range r.Spawns {
		if s.Special == SpecialBomb {
			n++
		}
	}
	return n
}

// PlusesSpawned counts plus spawns in the resolution.
func (r *Resolution) PlusesSpawned() int {
	n := 0
	for _, s := range r.Spawns {
		if s.Special == SpecialPlus {
			n++
		}
	}
	return n
}

// ResolveGroups classifies each group and accumulates removals, special
// spawns and queued activations. Classification precedence per group:
//
//  1. union (L/T) shape            → bomb spawned at the pivot
//  2. contains bomb and plus tiles → all special members queued
//  3. contains a plus tile         → plus(es) queued
//  4. contains a bomb tile         → bomb(s) queued
//  5. run length ≥5                → plus spawned at the middle index
//  6. run length ≥4                → bomb spawned at the middle index
//  7. plain run of 3               → removal only
func ResolveGroups(groups []MatchGroup) Resolution {
	var res Resolution
	seen := make(map[*Tile]bool)
	for gi := range groups {
		g := &groups[gi]
		var bombs, pluses []*Tile
		for _, t := range g.Tiles {
			switch t.Special {
			case SpecialBomb:
				bombs = append(bombs, t)
			case SpecialPlus:
				pluses = append(pluses, t)
			}
			if !seen[t] {
				seen[t] = true
				res.Removed = append(res.Removed, t)
			}
		}
		switch {
		case g.Union:
			res.Spawns = append(res.Spawns, SpawnSpec{
				Row: g.Pivot.Row, Col: g.Pivot.Col, Type: g.Type(), Special: SpecialBomb,
			})
		case len(bombs) > 0 || len(pluses) > 0:
			for _, t := range bombs {
				res.Triggered = append(res.Triggered, Activation{
					Row: t.Row, Col: t.Col, Kind: SpecialBomb, Radius: DefaultBombRadius,
				})
			}
			for _, t := range pluses {
				res.Triggered = append(res.Triggered, Activation{
					Row: t.Row, Col: t.Col, Kind: SpecialPlus,
				})
			}
		case len(g.Tiles) >= 5:
			m := g.Middle()
			res.Spawns = append(res.Spawns, SpawnSpec{
				Row: m.Row, Col: m.Col, Type: g.Type(), Special: SpecialPlus,
			})
		case len(g.Tiles) >= 4:
			m := g.Middle()
			res.Spawns = append(res.Spawns, SpawnSpec{
				Row: m.Row, Col: m.Col, Type: g.Type(), Special: SpecialBomb,
			})
		}
	}
	return res
}
