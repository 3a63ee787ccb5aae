package opt

import "pyrite/internal/ir0"

// hashCons merges structurally identical declarations. Fingerprints render
// declaration references by name, so merging one pair can make another pair
// identical; the loop runs to a fixed point. Public declarations keep their
// names and are never merged away.
func hashCons(m *ir0.Module) {
	for {
		remap := make(map[ir0.DeclID]ir0.DeclID)
		seen := make(map[string]ir0.DeclID)
		for _, d := range m.Decls() {
			if d.Builtin || d.Dead || d.IsError || d.Public {
				continue
			}
			fp := m.Fingerprint(d)
			if prev, ok := seen[fp]; ok {
				remap[d.ID] = prev
			} else {
				seen[fp] = d.ID
			}
		}
		if len(remap) == 0 {
			return
		}
		rewriteModule(m, func(e *ir0.Expr) *ir0.Expr {
			if e.Kind == ir0.ExprDeclRef {
				if to, ok := remap[e.Decl]; ok {
					return ir0.DeclRef(to)
				}
			}
			return e
		})
		for id := range remap {
			m.Decl(id).Dead = true
		}
	}
}
