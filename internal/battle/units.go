package battle

import "time"

// updateUnits runs the two barrier-separated unit sub-phases and merges the
// rockets fired during the second.
func (w *World) updateUnits() {
	n := len(w.units)
	if cap(w.snapshot) < n {
		w.snapshot = make([]Vec2, n)
	}
	w.snapshot = w.snapshot[:n]

	start := time.Now()
	w.exec.ForEachRange(n, w.avoidRange)
	w.tel.timePhase(phaseAvoidance, start)

	start = time.Now()
	w.exec.ForEachRange(n, w.moveRange)
	w.mergeFired()
	w.tel.timePhase(phaseMovement, start)
}

// avoidRange snapshots positions and accumulates separation pushes. Nothing
// writes positions during this sub-phase, so neighbours are read directly.
func (w *World) avoidRange(part int, r Range) {
	sep := w.cfg.SeparationDist()
	sep2 := sep * sep
	buf := w.near[part]
	for i := r.Start; i < r.End; i++ {
		u := &w.units[i]
		w.snapshot[i] = u.Pos
		if !u.Active() {
			continue
		}
		buf = w.grids[u.Faction].Near(buf[:0], u.Pos.X, u.Pos.Y)
		for _, j := range buf {
			if j == i {
				continue
			}
			o := &w.units[j]
			if !o.Active() {
				continue
			}
			d := u.Pos.Sub(o.Pos)
			if d.SqrLen() >= sep2 {
				continue
			}
			if d.IsZero() {
				// Stacked exactly: split them along x by ID.
				if u.ID < o.ID {
					u.push.X--
				} else {
					u.push.X++
				}
				continue
			}
			u.push = u.push.Add(d.Normalized())
		}
	}
	w.near[part] = buf
}

// moveRange steers, relocates and fires for units in r. Target acquisition
// reads the pre-tick snapshot. Fired rockets go to this range's pending
// buffer.
func (w *World) moveRange(part int, r Range) {
	bounds := w.bounds
	fired := w.pending[part][:0]
	for i := r.Start; i < r.End; i++ {
		u := &w.units[i]
		if !u.Active() {
			continue
		}
		steer := u.Goal.Sub(u.Pos).Normalized().Add(u.push)
		vel := steer.Scale(u.MaxSpeed * 0.5).ClampLen(u.MaxSpeed)
		u.Pos = bounds.Clamp(u.Pos.Add(vel))
		u.push = Vec2{}
		w.grids[u.Faction].Relocate(u.ID, u.Pos)

		if u.Cooldown > 0 {
			u.Cooldown--
		}
		if !u.Reloaded() {
			continue
		}
		t, ok := NearestEnemy(w.units, w.snapshot, i)
		if !ok {
			continue
		}
		dir := w.snapshot[t].Sub(u.Pos).Normalized()
		fired = append(fired, Projectile{
			Pos:     u.Pos,
			Vel:     dir.Scale(w.cfg.RocketSpeed),
			Faction: u.Faction,
			Active:  true,
			Radius:  w.cfg.RocketRadius,
		})
		u.Cooldown = w.cfg.ReloadTicks
	}
	w.pending[part] = fired
}

// mergeFired appends every range's pending rockets in range order.
func (w *World) mergeFired() {
	for part, buf := range w.pending {
		var per [factionCount]int
		for _, p := range buf {
			per[p.Faction]++
		}
		w.projectiles = append(w.projectiles, buf...)
		for f, n := range per {
			w.stats.Fired[f] += n
			w.tel.addFired(Faction(f), n)
		}
		w.pending[part] = buf[:0]
	}
}
