package main

import (
	"fmt"
	"log"
	"os"

	"github.com/akmonengine/ballast"
	"github.com/akmonengine/ballast/actor"
	"github.com/akmonengine/ballast/ray"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	dt       = 1.0 / 60.0
	maxSteps = 180
)

func newBox(position, halfExtents mgl64.Vec3) actor.Body {
	transform := actor.NewTransform()
	transform.Position = position

	return actor.NewBody(transform, &actor.Box{HalfExtents: halfExtents})
}

func newStaticBox(position, halfExtents mgl64.Vec3) actor.Body {
	transform := actor.NewTransform()
	transform.Position = position

	return actor.NewStaticBody(transform, &actor.Box{HalfExtents: halfExtents})
}

// newGround creates a 40x40 floor made of two triangles at y=0
func newGround() actor.Body {
	mesh := actor.NewMeshData(
		[]mgl64.Vec3{{-20, 0, -20}, {-20, 0, 20}, {20, 0, 20}, {20, 0, -20}},
		[]uint32{0, 1, 3, 1, 2, 3},
	)

	return actor.NewStaticBody(actor.NewTransform(), &actor.Mesh{Data: mesh})
}

func loadConfig() ballast.Config {
	if len(os.Args) < 2 {
		return ballast.DefaultConfig()
	}

	cfg, err := ballast.LoadConfig(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

func main() {
	pool := actor.NewPool(8)

	ground := pool.Add(newGround())

	platformBody := newStaticBox(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{2, 0.25, 2})
	platformBody.Velocity = mgl64.Vec3{1, 0, 0}
	platform := pool.Add(platformBody)

	riderBody := newBox(mgl64.Vec3{0, 1.75, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
	riderBody.CanBePushed = false
	riderBody.CanCarry = true
	rider := pool.Add(riderBody)

	crate := pool.Add(newBox(mgl64.Vec3{5, 0.5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}))

	world, err := ballast.NewWorld(pool, loadConfig())
	if err != nil {
		log.Fatal(err)
	}

	world.Events.Subscribe(ballast.COLLISION_ENTER, func(event ballast.Event) {
		e := event.(ballast.CollisionEnterEvent)
		fmt.Printf("enter: %v <-> %v\n", e.BodyA, e.BodyB)
	})
	world.Events.Subscribe(ballast.ON_PUSH, func(event ballast.Event) {
		e := event.(ballast.PushEvent)
		fmt.Printf("push: %v pushed %v by %v\n", e.Pusher, e.Pushed, e.Move)
	})
	world.Events.Subscribe(ballast.ON_DEPTH_LIMIT, func(event ballast.Event) {
		e := event.(ballast.DepthLimitEvent)
		fmt.Printf("depth limit: %v at depth %d\n", e.Body, e.Depth)
	})

	var debugData ballast.DebugRenderData
	handles := []actor.Handle{ground, platform, rider, crate}

	for step := 0; step < maxSteps; step++ {
		world.BeginCollect()
		for _, h := range handles {
			world.RegisterObject(h)
		}
		world.EndCollect()

		// the rider walks into the crate once the platform brings it close
		if step > 60 {
			pool.Get(rider).AddMove(mgl64.Vec3{2 * dt, 0, 0})
		}

		world.Simulate(dt)

		if step%30 == 0 {
			fmt.Printf("--- step %d ---\n", step)
			fmt.Printf("  platform: %v\n", pool.Get(platform).Transform.Position)
			fmt.Printf("  rider:    %v (display %v)\n", pool.Get(rider).Transform.Position, pool.Get(rider).DisplayPosition())
			fmt.Printf("  crate:    %v\n", pool.Get(crate).Transform.Position)
		}
	}

	world.GetDebugRenderData(&debugData)
	fmt.Printf("debug: %d line vertices, %d triangle vertices\n", len(debugData.Lines), len(debugData.Triangles))

	down := ray.Ray{Origin: mgl64.Vec3{5, 10, 0}, Direction: mgl64.Vec3{0, -1, 0}}
	if body, distance := world.RayIntersect(down, 1); body != nil {
		fmt.Printf("ray: hit %v at %.3f\n", body.Handle(), distance)
	}
}
