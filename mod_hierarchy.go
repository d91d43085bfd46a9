package gekko

type HierarchyModule struct{}

func (HierarchyModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(TransformHierarchySystem).
			InStage(PostUpdate),
	)
}

// TransformHierarchySystem resolves TransformComponent from
// LocalTransformComponent for every entity carrying both. Roots copy their
// local pose; children compose it onto their parent's world pose, resolving
// the parent first so hierarchies of any depth settle in one pass.
//
// Entities whose parent is missing or part of a cycle keep last frame's world
// transform.
func TransformHierarchySystem(cmd *Commands) {
	logger := cmd.Logger()
	locals := MakeQuery2[LocalTransformComponent, TransformComponent](cmd)
	worlds := MakeQuery1[TransformComponent](cmd)

	parents := make(map[EntityId]EntityId)
	MakeQuery1[Parent](cmd).Map(func(eid EntityId, parent *Parent) bool {
		parents[eid] = parent.Entity
		return true
	})

	resolved := make(map[EntityId]TransformComponent)
	visiting := make(set[EntityId])

	var resolve func(eid EntityId) (TransformComponent, bool)
	resolve = func(eid EntityId) (TransformComponent, bool) {
		if world, ok := resolved[eid]; ok {
			return world, true
		}

		local, world, err := locals.Get(eid)
		if err != nil {
			// Not hierarchy managed: its world transform is authoritative.
			if w, err := worlds.Get(eid); err == nil {
				return *w, true
			}
			return TransformComponent{}, false
		}

		if _, ok := visiting[eid]; ok {
			logger.Warnf("transform hierarchy: cycle through entity %d", eid)
			return TransformComponent{}, false
		}
		visiting[eid] = struct{}{}
		defer delete(visiting, eid)

		next := TransformComponent(*local)
		if parentId, ok := parents[eid]; ok {
			parentWorld, ok := resolve(parentId)
			if !ok {
				logger.Debugf("transform hierarchy: parent %d of entity %d unresolved", parentId, eid)
				return TransformComponent{}, false
			}
			next = parentWorld.MulTransform(*local)
		}

		*world = next
		resolved[eid] = next
		return next, true
	}

	locals.Map(func(eid EntityId, _ *LocalTransformComponent, _ *TransformComponent) bool {
		resolve(eid)
		return true
	})
}
