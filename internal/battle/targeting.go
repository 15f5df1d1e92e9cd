package battle

// NearestEnemy returns the index of the active unit of the opposing faction
// closest to units[self], measured on positions (a snapshot parallel to
// units). Ties go to the lowest index. It reports false when no enemy is alive.
func NearestEnemy(units []Unit, positions []Vec2, self int) (int, bool) {
	me := &units[self]
	from := positions[self]
	best, bestD := -1, 0.0
	for j := range units {
		u := &units[j]
		if u.Faction == me.Faction || !u.Active() {
			continue
		}
		d := from.Dist2(positions[j])
		if best < 0 || d < bestD {
			best, bestD = j, d
		}
	}
	return best, best >= 0
}
