// Package nwnerf wraps the external nwn_erf packer so the build can bundle a
// staged directory of 2DA files into a HAK archive.
package nwnerf
