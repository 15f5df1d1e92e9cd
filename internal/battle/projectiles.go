package battle

const noHit = -1

// updateProjectiles moves rockets and finds hits in parallel, then applies
// them sequentially in projectile order and drops spent rockets.
func (w *World) updateProjectiles() {
	n := len(w.projectiles)
	if cap(w.hits) < n {
		w.hits = make([]int, n)
	}
	w.hits = w.hits[:n]

	w.exec.ForEachRange(n, w.flyRange)
	w.resolveHits()
	w.projectiles = compactInPlace(w.projectiles, func(p *Projectile) bool { return p.Active })
}

// flyRange integrates rockets in r and records the first enemy each one
// overlaps. Only the rocket itself and its hit slot are written.
func (w *World) flyRange(part int, r Range) {
	buf := w.near[part]
	for i := r.Start; i < r.End; i++ {
		w.hits[i] = noHit
		p := &w.projectiles[i]
		if !p.Active {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel)
		if !w.cfg.Interaction.Contains(p.Pos) {
			continue
		}
		buf, w.hits[i] = w.firstOverlap(p, buf)
	}
	w.near[part] = buf
}

// firstOverlap returns the first active enemy in bucket scan order that p
// overlaps, or noHit. buf is reused as the neighbourhood query buffer.
func (w *World) firstOverlap(p *Projectile, buf []int) ([]int, int) {
	buf = w.grids[p.Faction.Opponent()].Near(buf[:0], p.Pos.X, p.Pos.Y)
	for _, id := range buf {
		u := &w.units[id]
		if u.Active() && p.Intersects(u.Pos, u.Radius) {
			return buf, id
		}
	}
	return buf, noHit
}

// resolveHits applies recorded hits. When the recorded target already died
// earlier in this pass the rocket takes the next live enemy it overlaps, and
// stays in flight if there is none. Dead units are out of the grid by then.
func (w *World) resolveHits() {
	for i, id := range w.hits {
		if id == noHit {
			continue
		}
		p := &w.projectiles[i]
		if !w.units[id].Active() {
			w.near[0], id = w.firstOverlap(p, w.near[0])
			if id == noHit {
				continue
			}
		}
		u := &w.units[id]
		p.Active = false
		w.explosions = append(w.explosions, Explosion{Pos: u.Pos, Lifetime: w.cfg.ExplosionTicks})
		w.stats.Hits[p.Faction]++
		w.tel.addHit(p.Faction)
		if u.Hit(w.cfg.RocketDamage) {
			w.kill(u, EventKill)
			continue
		}
		w.events = append(w.events, Event{Tick: w.tick, Kind: EventHit, Unit: u.ID, Faction: u.Faction, Pos: u.Pos})
	}
}
