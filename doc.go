/*
go-annocmp compares two sets of COCO object detection/segmentation
annotations, a machine generated set against a human reference set, and
visualizes the differences.

The root package holds the shared data model.  Matching and quality metrics
live in the compare subpackage, geometric primitives in geometry, the
pan/zoom coordinate transform in viewport and overlay rendering in render.
The coco subpackage parses COCO JSON files into the data model and the
server subpackage hosts an interactive HTTP/WebSocket viewer.

See cmd/annocmp for command line usage.
*/
package annocmp
