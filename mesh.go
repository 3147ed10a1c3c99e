package plater

// Point3 is a 3D point in micron space, mirroring the original Point3 used
// by Model.min()/Model.max(). Only X and Y matter to the core — footprints
// are 2D projections — but Z is kept for collaborator-interface fidelity.
type Point3 struct {
	X, Y, Z float64
}

// Orientation names the face of a Model that should be laid on the plate.
// The default, per spec §6, is "bottom".
type Orientation string

const (
	OrientationBottom Orientation = "bottom"
	OrientationTop    Orientation = "top"
	OrientationLeft   Orientation = "left"
	OrientationRight  Orientation = "right"
	OrientationFront  Orientation = "front"
	OrientationBack   Orientation = "back"
)

// Model is the external collaborator contract for a loaded triangle mesh.
// Mesh I/O and the pixelisation primitive are explicitly out of scope for
// this package (spec §1, §6); Model is the seam a real mesh library is
// plugged in through. See testModel in helpers_test.go for a minimal
// in-memory implementation used to exercise the engine without a real parser.
type Model interface {
	// PutFaceOnPlate returns a reoriented copy of the model with the named
	// face resting on the plate plane (z=0).
	PutFaceOnPlate(orientation Orientation) Model

	// Pixelize projects the model's footprint onto the plate plane and
	// rasterises it at the given precision (microns/pixel), padding the
	// raster so the outermost occupied pixel is ceil(spacing/precision)
	// cells from every edge.
	Pixelize(precision, spacing float64) (*Bitmap, error)

	// Min and Max return the model's axis-aligned bounding box corners,
	// in microns, after any PutFaceOnPlate reorientation.
	Min() Point3
	Max() Point3
}

// MeshLoader loads a Model from a filesystem path. Implementations are
// expected to parse STL/3MF/OBJ or similar; this package treats the result
// as an opaque collaborator.
type MeshLoader interface {
	Load(path string) (Model, error)
}
