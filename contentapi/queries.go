package contentapi

// Queries against the content service. Post queries share a single
// projection that resolves references and coalesces the legacy flat
// fields so both document generations come back in one shape.

const postFields = `{
  _id,
  title,
  "slug": slug.current,
  "sub": coalesce(subtitle, sub),
  "coverImageUrl": coverImage.asset->url,
  body,
  publishedAt,
  featured,
  emoji,
  "thumbGrad": coalesce(thumbGrad, [thumbGradStart, thumbGradEnd]),
  tags,
  "category": coalesce(category->title, category),
  "categoryColor": category->color,
  "authorName": coalesce(author->name, author),
  "authorRole": author->role,
  "authorAvatar": coalesce(author->avatarEmoji, author->avatar),
  "authorImageUrl": coalesce(author->photo.asset->url, author->image.asset->url)
}`

const authorFields = `{
  name,
  role,
  "avatar": coalesce(avatarEmoji, avatar),
  "imageUrl": coalesce(photo.asset->url, image.asset->url)
}`

const (
	queryAllPosts = `*[_type == "post"] | order(publishedAt desc) ` + postFields

	queryPostBySlug = `*[_type == "post" && slug.current == $slug][0] ` + postFields

	queryPostsByCategory = `*[_type == "post" && (category == $category || category->title == $category)] | order(publishedAt desc) ` + postFields

	queryPostsByAuthor = `*[_type == "post" && (author->name == $name || author == $name)] | order(publishedAt desc) ` + postFields

	queryAuthorByName = `*[_type == "author" && name == $name][0]` + authorFields

	queryAuthorsWithCounts = `*[_type == "author"] | order(name asc){
  name,
  role,
  "avatar": coalesce(avatarEmoji, avatar),
  "imageUrl": coalesce(photo.asset->url, image.asset->url),
  "postCount": count(*[_type == "post" && references(^._id)]),
  "latestCategory": coalesce(
    *[_type == "post" && references(^._id)] | order(publishedAt desc)[0].category->title,
    *[_type == "post" && references(^._id)] | order(publishedAt desc)[0].category
  ),
  "latestCategoryColor": *[_type == "post" && references(^._id)] | order(publishedAt desc)[0].category->color
}`

	queryAuthorIDBySlugOrName = `*[_type=="author" && (slug.current==$slug || name==$name)][0]{_id}`

	queryCategoryIDBySlugOrTitle = `*[_type=="category" && (slug.current==$slug || title==$title)][0]{_id}`
)
