// simpleScene drives manifold.Core and the solver package stand-in through
// a box falling onto a static plane, printing the manifold's state each
// step: broadphase pair creation, per-step contact count, and the box's
// height as it settles.
package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/body"
	"github.com/starling-physics/manifold/collide"
	"github.com/starling-physics/manifold/entity"
	"github.com/starling-physics/manifold/manifold"
	"github.com/starling-physics/manifold/shape"
	"github.com/starling-physics/manifold/solver"
	"github.com/starling-physics/manifold/spatial"
)

const (
	dt      = 1.0 / 60.0
	gravity = -9.81
	steps   = 90
)

func main() {
	core := manifold.NewCore(collide.NewTable())
	dynamics := entity.NewColumn[solver.DynamicState](core.Entities, "DynamicState")

	core.Events.Subscribe(manifold.CollisionEnter, func(e manifold.Event) {
		fmt.Printf("collision enter: %v / %v\n", e.BodyA, e.BodyB)
	})
	core.Events.Subscribe(manifold.CollisionExit, func(e manifold.Event) {
		fmt.Printf("collision exit: %v / %v\n", e.BodyA, e.BodyB)
	})

	rigid := &body.Material{Restitution: 0.3, Friction: 0.6, Stiffness: body.LargeScalar, Damping: body.LargeScalar}

	ground := core.AddBody(body.Body{
		Pose:     spatial.Pose{Position: mgl64.Vec3{0, 0, 0}, Orientation: mgl64.QuatIdent()},
		Shape:    shape.Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 0},
		Material: rigid,
	})
	dynamics.Create(ground, solver.Static())

	box := core.AddBody(body.Body{
		Pose:     spatial.Pose{Position: mgl64.Vec3{0, 3, 0}, Orientation: mgl64.QuatIdent()},
		Shape:    shape.Box{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}},
		Material: rigid,
	})
	dynamics.Create(box, solver.Uniform(1.0, 6.0))

	phys := &solver.Solver{}

	for step := 0; step < steps; step++ {
		dyn := dynamics.MustGet(box)
		dyn.Velocity = dyn.Velocity.Add(mgl64.Vec3{0, gravity * dt, 0})
		core.Bodies.Update(box, func(b *body.Body) {
			b.Pose.Position = b.Pose.Position.Add(dyn.Velocity.Mul(dt))
		})

		core.Step()
		phys.Step(dt, core.Bodies, dynamics, core.Manifolds, core.Points)

		contacts := 0
		if mh, ok := core.Broadphase.Pairs.Get(ground, box); ok {
			m, _ := core.Manifolds.Get(mh)
			contacts = m.NumPoints
		}

		b, _ := core.Bodies.Get(box)
		fmt.Printf("step %3d: y=%.4f contacts=%d\n", step, b.Pose.Position.Y(), contacts)
	}
}
