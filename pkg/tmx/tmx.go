// Package tmx parses Tiled map assets: .tmx maps, .tsx tilesets,
// .tx object templates and .world layout descriptors.
//
// External tilesets and templates are resolved through a shared cache so
// each distinct file is parsed once, however many maps reference it.
package tmx
