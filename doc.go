/*
Package lore builds a small markdown blog and its travel page.

Commandline

The commandline application lives in cmd/lore.

	go install github.com/gernest/lore/cmd/lore@latest

	lore build            convert every post and build the travel page
	lore post FILE        convert a single post
	lore travel           build the travel page only
	lore serve            build, serve and rebuild on change

The Project Structure

Any markdown file below the project root is a post, except for files in
the travel directory, directories starting with _ or . and README.md.
Supported file extensions are

	.md , .MD , .mdown, and .markdown

A post is written next to its source with an .html extension, or mirrored
below the output directory when one is configured.

Front matter is optional yaml between --- lines.

	title
	  Title of the post. The first "# " heading of the body is used when
	  missing.

	authors
	  A name, a list of names, or a list of {name, url} maps.

	date
	  YYYY-MM-DD. Taken from the path when it contains a date segment.

	summary
	  Shown under the title.

Travel

Every markdown file directly inside the travel directory with front matter
is one section of travel/index.html. Files are ordered by name, newest
first, so name them 2024-kyoto.md and so on.

	id        anchor of the section, derived from the file name when missing
	title     heading of the section
	date      shown next to the location
	location  shown next to the date, and the pin tooltip
	coords    [lat, lon] in decimal degrees, places a pin on the map

The map is an inline SVG drawn with the projection of package geo. Every
pin links to the section of its entry.

Configuration

The optional _lore.yml at the project root holds the site settings. Every
key can be overridden from the environment with a LORE_ prefix, so
LORE_MAP_PROJECTION=equirectangular sets map.projection.

	site.title, site.description, site.authors
	theme                  directory below _themes overriding templates
	output                 output directory, relative to the root
	static                 files and directories copied to output
	markdown.engine        goldmark or pandoc
	markdown.code_style    chroma style for server side highlighting
	travel.dir, travel.title
	travel.strict          fail on bad coords instead of dropping the pin
	map.projection         robinson or equirectangular
	map.width, map.height, map.central_meridian, map.pole_compression
	map.pin_radius, map.background

The Library

The build is driven by the Generator interface. App.Run loads the files,
splits their front matter concurrently and hands the sorted pages to the
Renderer. You can implement your own Generator and pass it to NewApp.
*/
package lore
