package mocks

//go:generate mockery --name DocumentFinder --srcpkg github.com/paneldeck/paneldeck/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name LayoutStore --srcpkg github.com/paneldeck/paneldeck/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
